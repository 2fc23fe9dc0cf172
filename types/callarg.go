package types

import "github.com/shopspring/decimal"

// CallArgKind tags a decoded call argument.
type CallArgKind int32

const (
	// ArgOpaque marks an argument the decoder could not reduce to one of
	// the value kinds the analyzer understands (structs, expressions,
	// blobs). Opaque arguments force conservative classification.
	ArgOpaque CallArgKind = iota
	ArgAddress
	ArgAmount
	ArgIds
	ArgBucket
)

// CallArg is one already decoded argument of a call instruction. The
// analyzer only needs the small subset of the value model that names
// resources, quantities and bucket handles; anything else stays opaque.
type CallArg struct {
	Kind    CallArgKind
	Address ResourceAddress
	Amount  decimal.Decimal
	Ids     []NonFungibleLocalID
	Bucket  BucketID
}

func OpaqueArg() CallArg { return CallArg{Kind: ArgOpaque} }

func AddressArg(address ResourceAddress) CallArg {
	return CallArg{Kind: ArgAddress, Address: address}
}

func AmountArg(amount decimal.Decimal) CallArg {
	return CallArg{Kind: ArgAmount, Amount: amount}
}

func IdsArg(ids []NonFungibleLocalID) CallArg {
	return CallArg{Kind: ArgIds, Ids: ids}
}

func BucketArg(id BucketID) CallArg {
	return CallArg{Kind: ArgBucket, Bucket: id}
}
