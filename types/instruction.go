package types

import "github.com/shopspring/decimal"

// BucketID is a manifest assigned bucket handle. Buckets are numbered in
// creation order starting from zero.
type BucketID uint32

// ProofID is a manifest assigned proof handle.
type ProofID uint32

// Instruction is the closed set of manifest instruction variants. The
// analyzer receives instructions already decoded from their textual or
// binary form, it never parses manifests itself.
type Instruction interface {
	instructionName() string
}

// Worktop instructions.

// TakeAllFromWorktop moves the whole worktop balance of one resource into a
// new bucket.
type TakeAllFromWorktop struct {
	ResourceAddress ResourceAddress
}

// TakeFromWorktop moves an exact fungible amount into a new bucket.
type TakeFromWorktop struct {
	ResourceAddress ResourceAddress
	Amount          decimal.Decimal
}

// TakeNonFungiblesFromWorktop moves an exact id set into a new bucket.
type TakeNonFungiblesFromWorktop struct {
	ResourceAddress ResourceAddress
	Ids             []NonFungibleLocalID
}

// ReturnToWorktop puts a bucket's content back on the worktop, consuming the
// bucket.
type ReturnToWorktop struct {
	BucketID BucketID
}

type AssertWorktopContainsAny struct {
	ResourceAddress ResourceAddress
}

type AssertWorktopContains struct {
	ResourceAddress ResourceAddress
	Amount          decimal.Decimal
}

type AssertWorktopContainsNonFungibles struct {
	ResourceAddress ResourceAddress
	Ids             []NonFungibleLocalID
}

// Auth zone and proof instructions. None of these move resources.

type PopFromAuthZone struct{}

type PushToAuthZone struct {
	ProofID ProofID
}

type CreateProofFromAuthZoneOfAmount struct {
	ResourceAddress ResourceAddress
	Amount          decimal.Decimal
}

type CreateProofFromAuthZoneOfNonFungibles struct {
	ResourceAddress ResourceAddress
	Ids             []NonFungibleLocalID
}

type CreateProofFromAuthZoneOfAll struct {
	ResourceAddress ResourceAddress
}

type DropAuthZoneProofs struct{}

type DropAuthZoneRegularProofs struct{}

type DropAuthZoneSignatureProofs struct{}

type CloneProof struct {
	ProofID ProofID
}

type DropProof struct {
	ProofID ProofID
}

type DropNamedProofs struct{}

type DropAllProofs struct{}

type AllocateGlobalAddress struct {
	PackageAddress GlobalAddress
	BlueprintName  string
}

// Bucket proof instructions.

// CreateProofFromBucketOfAmount proves a fungible fraction of a bucket
// without consuming it.
type CreateProofFromBucketOfAmount struct {
	BucketID BucketID
	Amount   decimal.Decimal
}

// CreateProofFromBucketOfNonFungibles proves an id subset of a bucket
// without consuming it.
type CreateProofFromBucketOfNonFungibles struct {
	BucketID BucketID
	Ids      []NonFungibleLocalID
}

// CreateProofFromBucketOfAll proves the full content and consumes the
// bucket.
type CreateProofFromBucketOfAll struct {
	BucketID BucketID
}

// BurnResource destroys a bucket's content, consuming the bucket.
type BurnResource struct {
	BucketID BucketID
}

// Call instructions.

type CallMethod struct {
	Address GlobalAddress
	Method  string
	Args    []CallArg
}

type CallFunction struct {
	PackageAddress GlobalAddress
	BlueprintName  string
	FunctionName   string
	Args           []CallArg
}

type CallRoyaltyMethod struct {
	Address GlobalAddress
	Method  string
	Args    []CallArg
}

type CallMetadataMethod struct {
	Address GlobalAddress
	Method  string
	Args    []CallArg
}

type CallRoleAssignmentMethod struct {
	Address GlobalAddress
	Method  string
	Args    []CallArg
}

// CallDirectVaultMethod addresses a vault directly, bypassing every modeled
// resource pathway.
type CallDirectVaultMethod struct {
	Address GlobalAddress
	Method  string
	Args    []CallArg
}

func (*TakeAllFromWorktop) instructionName() string          { return "take_all_from_worktop" }
func (*TakeFromWorktop) instructionName() string             { return "take_from_worktop" }
func (*TakeNonFungiblesFromWorktop) instructionName() string { return "take_non_fungibles_from_worktop" }
func (*ReturnToWorktop) instructionName() string             { return "return_to_worktop" }
func (*AssertWorktopContainsAny) instructionName() string    { return "assert_worktop_contains_any" }
func (*AssertWorktopContains) instructionName() string       { return "assert_worktop_contains" }
func (*AssertWorktopContainsNonFungibles) instructionName() string {
	return "assert_worktop_contains_non_fungibles"
}
func (*PopFromAuthZone) instructionName() string                 { return "pop_from_auth_zone" }
func (*PushToAuthZone) instructionName() string                  { return "push_to_auth_zone" }
func (*CreateProofFromAuthZoneOfAmount) instructionName() string { return "create_proof_from_auth_zone_of_amount" }
func (*CreateProofFromAuthZoneOfNonFungibles) instructionName() string {
	return "create_proof_from_auth_zone_of_non_fungibles"
}
func (*CreateProofFromAuthZoneOfAll) instructionName() string { return "create_proof_from_auth_zone_of_all" }
func (*DropAuthZoneProofs) instructionName() string           { return "drop_auth_zone_proofs" }
func (*DropAuthZoneRegularProofs) instructionName() string    { return "drop_auth_zone_regular_proofs" }
func (*DropAuthZoneSignatureProofs) instructionName() string  { return "drop_auth_zone_signature_proofs" }
func (*CloneProof) instructionName() string                   { return "clone_proof" }
func (*DropProof) instructionName() string                    { return "drop_proof" }
func (*DropNamedProofs) instructionName() string              { return "drop_named_proofs" }
func (*DropAllProofs) instructionName() string                { return "drop_all_proofs" }
func (*AllocateGlobalAddress) instructionName() string        { return "allocate_global_address" }
func (*CreateProofFromBucketOfAmount) instructionName() string {
	return "create_proof_from_bucket_of_amount"
}
func (*CreateProofFromBucketOfNonFungibles) instructionName() string {
	return "create_proof_from_bucket_of_non_fungibles"
}
func (*CreateProofFromBucketOfAll) instructionName() string { return "create_proof_from_bucket_of_all" }
func (*BurnResource) instructionName() string               { return "burn_resource" }
func (*CallMethod) instructionName() string                 { return "call_method" }
func (*CallFunction) instructionName() string               { return "call_function" }
func (*CallRoyaltyMethod) instructionName() string          { return "call_royalty_method" }
func (*CallMetadataMethod) instructionName() string         { return "call_metadata_method" }
func (*CallRoleAssignmentMethod) instructionName() string   { return "call_role_assignment_method" }
func (*CallDirectVaultMethod) instructionName() string      { return "call_direct_vault_method" }

// InstructionName reports the canonical snake case name of an instruction
// variant, as used in the JSON manifest representation.
func InstructionName(ins Instruction) string {
	return ins.instructionName()
}
