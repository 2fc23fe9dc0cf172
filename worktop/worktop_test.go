package worktop

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

var (
	xrd = types.ResourceAddress("resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd")
	nft = types.ResourceAddress("resource_rdx1ngktvyeenvvqetnqwysvcx5fyvl6hqe36y3rkhdfdn6uzvt5366ha4")
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amountSpec(addr types.ResourceAddress, s string) types.ResourceSpecifier {
	return types.NewAmountSpecifier(addr, amt(s))
}

func idsSpec(addr types.ResourceAddress, ids ...types.NonFungibleLocalID) types.ResourceSpecifier {
	return types.NewIdsSpecifier(addr, ids)
}

func TestTakeKnownAmount(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(xrd, "10"))

	require.True(t, w.TakeKnown(amountSpec(xrd, "4")))
	// 6 left
	require.True(t, w.TakeKnown(amountSpec(xrd, "6")))
	// pool is now empty for xrd
	assert.False(t, w.TakeKnown(amountSpec(xrd, "1")))
}

func TestTakeKnownAmountInsufficient(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(xrd, "3"))

	assert.False(t, w.TakeKnown(amountSpec(xrd, "5")))
	// rejection must not mutate the pool
	assert.True(t, w.TakeKnown(amountSpec(xrd, "3")))
}

func TestTakeKnownEmptyPool(t *testing.T) {
	w := NewWorktopContentTracker()
	assert.False(t, w.TakeKnown(amountSpec(xrd, "1")))
}

func TestTakeKnownReconcilesEntries(t *testing.T) {
	w := NewWorktopContentTracker()
	// two independent deposits before any withdrawal
	w.Put(amountSpec(xrd, "2"))
	w.Put(amountSpec(xrd, "3"))

	require.True(t, w.TakeKnown(amountSpec(xrd, "5")))
	assert.False(t, w.TakeKnown(amountSpec(xrd, "0.1")))
}

func TestTakeAmountAgainstIdsPoolRejected(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(idsSpec(nft, "#1#", "#2#"))

	// amount take against an id tracked pool is ambiguous
	assert.False(t, w.TakeKnown(amountSpec(nft, "1")))
	// pool untouched
	require.True(t, w.TakeKnown(idsSpec(nft, "#1#", "#2#")))
}

func TestTakeKnownIds(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(idsSpec(nft, "#1#", "#2#"))
	w.Put(idsSpec(nft, "#3#"))

	require.True(t, w.TakeKnown(idsSpec(nft, "#1#", "#3#")))
	// only #2# left
	assert.False(t, w.TakeKnown(idsSpec(nft, "#3#")))
	require.True(t, w.TakeKnown(idsSpec(nft, "#2#")))
}

func TestTakeIdsAgainstAmountPoolRejected(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(nft, "2"))

	assert.False(t, w.TakeKnown(idsSpec(nft, "#1#")))
}

func TestTakeAllOf(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(xrd, "1.5"))
	w.Put(amountSpec(xrd, "2.5"))

	res, ok := w.TakeAllOf(xrd)
	require.True(t, ok)
	assert.True(t, res.Equal(amountSpec(xrd, "4")))

	_, ok = w.TakeAllOf(xrd)
	assert.False(t, ok)
}

func TestTakeAllOfMixedEntriesDegrades(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(nft, "1"))
	w.Put(idsSpec(nft, "#1#"))

	_, ok := w.TakeAllOf(nft)
	assert.False(t, ok)
}

func TestWorktopUntrackedModeIsMonotone(t *testing.T) {
	w := NewWorktopContentTracker()
	w.Put(amountSpec(xrd, "10"))

	require.False(t, w.IsUntrackedMode())
	w.EnterUntrackedMode()
	require.True(t, w.IsUntrackedMode())
	// idempotent
	w.EnterUntrackedMode()
	require.True(t, w.IsUntrackedMode())

	// everything is a no-op now
	w.Put(amountSpec(xrd, "1"))
	assert.False(t, w.TakeKnown(amountSpec(xrd, "1")))
	_, ok := w.TakeAllOf(xrd)
	assert.False(t, ok)
}
