package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SpecifierKind tags the content of a ResourceSpecifier.
type SpecifierKind int32

const (
	// SpecifierAmount means the content is a decimal amount of a fungible
	// resource.
	SpecifierAmount SpecifierKind = iota
	// SpecifierIds means the content is a set of non fungible ids.
	SpecifierIds
)

// ResourceSpecifier describes a quantity of one resource, either by decimal
// amount or by a discrete id set. Specifiers are immutable, all mutating
// operations return a new value. A specifier never mixes both content kinds.
type ResourceSpecifier struct {
	address ResourceAddress
	kind    SpecifierKind
	amount  decimal.Decimal
	ids     map[NonFungibleLocalID]struct{}
}

// NewAmountSpecifier builds a fungible specifier.
func NewAmountSpecifier(address ResourceAddress, amount decimal.Decimal) ResourceSpecifier {
	return ResourceSpecifier{address: address, kind: SpecifierAmount, amount: amount}
}

// NewIdsSpecifier builds a non fungible specifier. Duplicate ids collapse.
func NewIdsSpecifier(address ResourceAddress, ids []NonFungibleLocalID) ResourceSpecifier {
	set := make(map[NonFungibleLocalID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return ResourceSpecifier{address: address, kind: SpecifierIds, ids: set}
}

func (s ResourceSpecifier) Address() ResourceAddress { return s.address }

func (s ResourceSpecifier) Kind() SpecifierKind { return s.kind }

func (s ResourceSpecifier) IsAmount() bool { return s.kind == SpecifierAmount }

// Amount returns the decimal content, zero for an id specifier.
func (s ResourceSpecifier) Amount() decimal.Decimal { return s.amount }

// Ids returns a sorted copy of the id set, nil for an amount specifier.
func (s ResourceSpecifier) Ids() []NonFungibleLocalID {
	if s.kind != SpecifierIds {
		return nil
	}
	ids := make([]NonFungibleLocalID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count reports the number of ids held by an id specifier.
func (s ResourceSpecifier) Count() int { return len(s.ids) }

// ContainsIds reports whether every id in ids is present in the specifier.
func (s ResourceSpecifier) ContainsIds(ids []NonFungibleLocalID) bool {
	if s.kind != SpecifierIds {
		return false
	}
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Merge combines two specifiers for the same resource: amounts are summed,
// id sets are unioned. Mixing addresses or content kinds is a programming
// error reported as ErrSpecifierMismatch.
func (s ResourceSpecifier) Merge(other ResourceSpecifier) (ResourceSpecifier, error) {
	if s.address != other.address || s.kind != other.kind {
		return ResourceSpecifier{}, ErrSpecifierMismatch
	}
	if s.kind == SpecifierAmount {
		return NewAmountSpecifier(s.address, s.amount.Add(other.amount)), nil
	}
	merged := make(map[NonFungibleLocalID]struct{}, len(s.ids)+len(other.ids))
	for id := range s.ids {
		merged[id] = struct{}{}
	}
	for id := range other.ids {
		merged[id] = struct{}{}
	}
	return ResourceSpecifier{address: s.address, kind: SpecifierIds, ids: merged}, nil
}

// Equal compares address, kind and content.
func (s ResourceSpecifier) Equal(other ResourceSpecifier) bool {
	if s.address != other.address || s.kind != other.kind {
		return false
	}
	if s.kind == SpecifierAmount {
		return s.amount.Equal(other.amount)
	}
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (s ResourceSpecifier) String() string {
	if s.kind == SpecifierAmount {
		return fmt.Sprintf("%s: %s", s.address, s.amount.String())
	}
	ids := s.Ids()
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return fmt.Sprintf("%s: {%s}", s.address, strings.Join(strs, ", "))
}

type specifierJSON struct {
	ResourceAddress ResourceAddress      `json:"resource_address"`
	Amount          *decimal.Decimal     `json:"amount,omitempty"`
	Ids             []NonFungibleLocalID `json:"ids,omitempty"`
}

// MarshalJSON renders the specifier for CLI and RPC consumers.
func (s ResourceSpecifier) MarshalJSON() ([]byte, error) {
	out := specifierJSON{ResourceAddress: s.address}
	if s.kind == SpecifierAmount {
		amount := s.amount
		out.Amount = &amount
	} else {
		ids := s.Ids()
		if ids == nil {
			ids = []NonFungibleLocalID{}
		}
		out.Ids = ids
	}
	return json.Marshal(&out)
}
