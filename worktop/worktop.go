package worktop

import (
	log "github.com/inconshreveable/log15"
	"github.com/shopspring/decimal"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

var wlog = log.New("module", "worktop.content")

// WorktopContentTracker models the transaction wide shared resource pool.
// While tracked it knows, per resource address, the exact quantity sitting
// on the worktop as a multiset of specifiers. Fungible and non fungible
// entries use different arithmetic, so entries are reconciled on demand
// rather than folded into a running total.
//
// The untracked flag is monotone: once an unknown quantity enters or leaves
// the worktop nothing can be said about its content for the rest of the
// transaction, and there is no way back to tracked.
type WorktopContentTracker struct {
	content   map[types.ResourceAddress][]types.ResourceSpecifier
	untracked bool
}

// NewWorktopContentTracker starts tracked and empty.
func NewWorktopContentTracker() *WorktopContentTracker {
	return &WorktopContentTracker{
		content: make(map[types.ResourceAddress][]types.ResourceSpecifier),
	}
}

// Put adds a known quantity to the pool. No-op in untracked mode.
func (w *WorktopContentTracker) Put(res types.ResourceSpecifier) {
	if w.untracked {
		return
	}
	addr := res.Address()
	w.content[addr] = append(w.content[addr], res)
}

// TakeKnown removes exactly res from the pool. It succeeds only when the
// pooled entries for the address have the same content kind as the request
// and cover it in full: a sufficient summed amount for a fungible take, a
// superset id set for a non fungible take. An amount take against id
// tracked entries (or the reverse) is ambiguous and is rejected without
// mutation. Returns false in untracked mode.
func (w *WorktopContentTracker) TakeKnown(res types.ResourceSpecifier) bool {
	if w.untracked {
		return false
	}
	entries, ok := w.content[res.Address()]
	if !ok || len(entries) == 0 {
		return false
	}
	for _, entry := range entries {
		if entry.Kind() != res.Kind() {
			return false
		}
	}
	if res.IsAmount() {
		return w.takeAmount(res, entries)
	}
	return w.takeIds(res, entries)
}

func (w *WorktopContentTracker) takeAmount(res types.ResourceSpecifier, entries []types.ResourceSpecifier) bool {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount())
	}
	if total.LessThan(res.Amount()) {
		wlog.Debug("take rejected, pooled amount insufficient",
			"resource", res.Address(), "pooled", total, "requested", res.Amount())
		return false
	}
	remaining := total.Sub(res.Amount())
	if remaining.IsZero() {
		delete(w.content, res.Address())
		return true
	}
	w.content[res.Address()] = []types.ResourceSpecifier{
		types.NewAmountSpecifier(res.Address(), remaining),
	}
	return true
}

func (w *WorktopContentTracker) takeIds(res types.ResourceSpecifier, entries []types.ResourceSpecifier) bool {
	pooled := entries[0]
	for _, entry := range entries[1:] {
		merged, err := pooled.Merge(entry)
		if err != nil {
			return false
		}
		pooled = merged
	}
	requested := res.Ids()
	if !pooled.ContainsIds(requested) {
		wlog.Debug("take rejected, pooled ids do not cover request",
			"resource", res.Address(), "pooled", pooled.Count(), "requested", len(requested))
		return false
	}
	taken := make(map[types.NonFungibleLocalID]struct{}, len(requested))
	for _, id := range requested {
		taken[id] = struct{}{}
	}
	remaining := make([]types.NonFungibleLocalID, 0, pooled.Count()-len(requested))
	for _, id := range pooled.Ids() {
		if _, ok := taken[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		delete(w.content, res.Address())
		return true
	}
	w.content[res.Address()] = []types.ResourceSpecifier{
		types.NewIdsSpecifier(res.Address(), remaining),
	}
	return true
}

// TakeAllOf removes and returns the whole pooled quantity for the address.
// The second return is false when there is nothing pooled for the address,
// when the pooled entries cannot be merged into one specifier, or in
// untracked mode.
func (w *WorktopContentTracker) TakeAllOf(addr types.ResourceAddress) (types.ResourceSpecifier, bool) {
	if w.untracked {
		return types.ResourceSpecifier{}, false
	}
	entries, ok := w.content[addr]
	if !ok || len(entries) == 0 {
		return types.ResourceSpecifier{}, false
	}
	merged := entries[0]
	for _, entry := range entries[1:] {
		next, err := merged.Merge(entry)
		if err != nil {
			return types.ResourceSpecifier{}, false
		}
		merged = next
	}
	delete(w.content, addr)
	return merged, true
}

// EnterUntrackedMode is idempotent and irreversible.
func (w *WorktopContentTracker) EnterUntrackedMode() {
	if w.untracked {
		return
	}
	wlog.Debug("worktop content enters untracked mode")
	w.untracked = true
	w.content = nil
}

func (w *WorktopContentTracker) IsUntrackedMode() bool {
	return w.untracked
}
