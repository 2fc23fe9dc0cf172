package worktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

func TestBucketIdsAreSequential(t *testing.T) {
	b := NewBucketTracker()

	assert.Equal(t, types.BucketID(0), b.NewBucketKnownResources(amountSpec(xrd, "1")))
	assert.Equal(t, types.BucketID(1), b.NewBucketUnknownResources())
	assert.Equal(t, types.BucketID(2), b.NewBucketKnownResources(amountSpec(xrd, "2")))
}

func TestBucketConsumed(t *testing.T) {
	b := NewBucketTracker()
	known := b.NewBucketKnownResources(amountSpec(xrd, "10"))
	unknown := b.NewBucketUnknownResources()

	content, err := b.BucketConsumed(known)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.True(t, content.Equal(amountSpec(xrd, "10")))

	content, err = b.BucketConsumed(unknown)
	require.NoError(t, err)
	assert.Nil(t, content)

	// a bucket dies exactly once
	_, err = b.BucketConsumed(known)
	assert.ErrorIs(t, err, types.ErrBucketNotFound)
}

func TestBucketConsumedUnknownID(t *testing.T) {
	b := NewBucketTracker()
	_, err := b.BucketConsumed(types.BucketID(7))
	assert.ErrorIs(t, err, types.ErrBucketNotFound)
}

func TestTryConsumeFungibleFromBucket(t *testing.T) {
	b := NewBucketTracker()
	id := b.NewBucketKnownResources(amountSpec(xrd, "10"))

	res, ok := b.TryConsumeFungibleFromBucket(id, amt("3"))
	require.True(t, ok)
	assert.True(t, res.Equal(amountSpec(xrd, "3")))

	// partial consumption is not tracked cumulatively: a second identical
	// proof succeeds against the original recorded balance
	res, ok = b.TryConsumeFungibleFromBucket(id, amt("3"))
	require.True(t, ok)
	assert.True(t, res.Equal(amountSpec(xrd, "3")))

	// but never more than the recorded balance at once
	_, ok = b.TryConsumeFungibleFromBucket(id, amt("10.1"))
	assert.False(t, ok)

	// the bucket itself is still alive
	content, err := b.BucketConsumed(id)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.True(t, content.Equal(amountSpec(xrd, "10")))
}

func TestTryConsumeFungibleRejections(t *testing.T) {
	b := NewBucketTracker()
	unknown := b.NewBucketUnknownResources()
	ids := b.NewBucketKnownResources(idsSpec(nft, "#1#"))

	_, ok := b.TryConsumeFungibleFromBucket(unknown, amt("1"))
	assert.False(t, ok)
	_, ok = b.TryConsumeFungibleFromBucket(ids, amt("1"))
	assert.False(t, ok)
	_, ok = b.TryConsumeFungibleFromBucket(types.BucketID(9), amt("1"))
	assert.False(t, ok)
}

func TestTryConsumeNonFungibleFromBucket(t *testing.T) {
	b := NewBucketTracker()
	id := b.NewBucketKnownResources(idsSpec(nft, "#1#", "#2#", "#3#"))

	res, ok := b.TryConsumeNonFungibleFromBucket(id, []types.NonFungibleLocalID{"#1#", "#3#"})
	require.True(t, ok)
	assert.True(t, res.Equal(idsSpec(nft, "#1#", "#3#")))

	// not a subset
	_, ok = b.TryConsumeNonFungibleFromBucket(id, []types.NonFungibleLocalID{"#4#"})
	assert.False(t, ok)

	// wrong content kind
	fungible := b.NewBucketKnownResources(amountSpec(xrd, "5"))
	_, ok = b.TryConsumeNonFungibleFromBucket(fungible, []types.NonFungibleLocalID{"#1#"})
	assert.False(t, ok)
}

func TestBucketUntrackedModeIsMonotone(t *testing.T) {
	b := NewBucketTracker()
	id := b.NewBucketKnownResources(amountSpec(xrd, "1"))

	require.False(t, b.IsUntrackedMode())
	b.EnterUntrackedMode()
	require.True(t, b.IsUntrackedMode())
	b.EnterUntrackedMode()
	require.True(t, b.IsUntrackedMode())

	content, err := b.BucketConsumed(id)
	require.NoError(t, err)
	assert.Nil(t, content)
	_, ok := b.TryConsumeFungibleFromBucket(id, amt("1"))
	assert.False(t, ok)
}
