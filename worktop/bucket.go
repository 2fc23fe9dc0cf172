package worktop

import (
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

var blog = log.New("module", "worktop.bucket")

// BucketTracker models the ephemeral buckets a manifest creates. Bucket ids
// are assigned by the manifest in creation order, so the tracker mirrors
// that numbering with a counter. A nil entry means the bucket exists but
// its content is unknown; unknown buckets coexist with known ones without
// degrading the tracker.
//
// Untracked mode is reserved for the case where the tracker cannot even
// know that a bucket was created (an opaque call with arbitrary effects).
// Like the worktop flag it is monotone.
type BucketTracker struct {
	buckets   map[types.BucketID]*types.ResourceSpecifier
	nextID    types.BucketID
	untracked bool
}

func NewBucketTracker() *BucketTracker {
	return &BucketTracker{
		buckets: make(map[types.BucketID]*types.ResourceSpecifier),
	}
}

// NewBucketKnownResources registers the next bucket with exact content.
func (b *BucketTracker) NewBucketKnownResources(res types.ResourceSpecifier) types.BucketID {
	id := b.nextID
	b.nextID++
	if b.untracked {
		return id
	}
	b.buckets[id] = &res
	blog.Debug("new bucket with known resources", "bucket", id, "resources", res.String())
	return id
}

// NewBucketUnknownResources registers the next bucket with unknown content.
func (b *BucketTracker) NewBucketUnknownResources() types.BucketID {
	id := b.nextID
	b.nextID++
	if b.untracked {
		return id
	}
	b.buckets[id] = nil
	blog.Debug("new bucket with unknown resources", "bucket", id)
	return id
}

// TryConsumeFungibleFromBucket returns the specifier for a fungible
// fraction of the bucket without consuming the bucket. It succeeds only
// when the bucket is alive with known amount typed content of at least
// amount. The bucket's recorded balance is intentionally not reduced:
// partial consumption is not tracked cumulatively.
func (b *BucketTracker) TryConsumeFungibleFromBucket(id types.BucketID, amount decimal.Decimal) (types.ResourceSpecifier, bool) {
	if b.untracked {
		return types.ResourceSpecifier{}, false
	}
	content, ok := b.buckets[id]
	if !ok || content == nil || !content.IsAmount() {
		return types.ResourceSpecifier{}, false
	}
	if content.Amount().LessThan(amount) {
		return types.ResourceSpecifier{}, false
	}
	return types.NewAmountSpecifier(content.Address(), amount), true
}

// TryConsumeNonFungibleFromBucket is the id set analogue of
// TryConsumeFungibleFromBucket.
func (b *BucketTracker) TryConsumeNonFungibleFromBucket(id types.BucketID, ids []types.NonFungibleLocalID) (types.ResourceSpecifier, bool) {
	if b.untracked {
		return types.ResourceSpecifier{}, false
	}
	content, ok := b.buckets[id]
	if !ok || content == nil || content.IsAmount() {
		return types.ResourceSpecifier{}, false
	}
	if !content.ContainsIds(ids) {
		return types.ResourceSpecifier{}, false
	}
	return types.NewIdsSpecifier(content.Address(), ids), true
}

// BucketConsumed removes the bucket and returns its content, nil if the
// content was unknown. Looking up a dead or never created bucket id while
// tracked breaks the manifest's bucket scoping contract and is a hard
// error. In untracked mode the call reports nothing.
func (b *BucketTracker) BucketConsumed(id types.BucketID) (*types.ResourceSpecifier, error) {
	if b.untracked {
		return nil, nil
	}
	content, ok := b.buckets[id]
	if !ok {
		return nil, errors.Wrapf(types.ErrBucketNotFound, "bucket %d", id)
	}
	delete(b.buckets, id)
	blog.Debug("bucket consumed", "bucket", id, "known", content != nil)
	return content, nil
}

// EnterUntrackedMode is idempotent and irreversible.
func (b *BucketTracker) EnterUntrackedMode() {
	if b.untracked {
		return
	}
	blog.Debug("bucket tracker enters untracked mode")
	b.untracked = true
	b.buckets = nil
}

func (b *BucketTracker) IsUntrackedMode() bool {
	return b.untracked
}
