package manifest

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

// JSON representation of a manifest: a tagged union per instruction, tag in
// the "type" field, names matching types.InstructionName. This is tooling
// glue for the CLI and tests; the binary manifest codec lives outside this
// repository.

type manifestJSON struct {
	Instructions []instructionJSON `json:"instructions"`
}

type instructionJSON struct {
	Type            string                     `json:"type"`
	ResourceAddress types.ResourceAddress      `json:"resource_address,omitempty"`
	Amount          *decimal.Decimal           `json:"amount,omitempty"`
	Ids             []types.NonFungibleLocalID `json:"ids,omitempty"`
	BucketID        *types.BucketID            `json:"bucket_id,omitempty"`
	ProofID         *types.ProofID             `json:"proof_id,omitempty"`
	Address         types.GlobalAddress        `json:"address,omitempty"`
	Method          string                     `json:"method,omitempty"`
	PackageAddress  types.GlobalAddress        `json:"package_address,omitempty"`
	BlueprintName   string                     `json:"blueprint_name,omitempty"`
	FunctionName    string                     `json:"function_name,omitempty"`
	Args            []callArgJSON              `json:"args,omitempty"`
}

type callArgJSON struct {
	Type    string                     `json:"type"`
	Address types.ResourceAddress      `json:"address,omitempty"`
	Amount  *decimal.Decimal           `json:"amount,omitempty"`
	Ids     []types.NonFungibleLocalID `json:"ids,omitempty"`
	Bucket  *types.BucketID            `json:"bucket,omitempty"`
}

// UnmarshalJSON decodes the tagged union representation.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw manifestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode manifest")
	}
	instructions := make([]types.Instruction, 0, len(raw.Instructions))
	for i, entry := range raw.Instructions {
		ins, err := entry.decode()
		if err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
		instructions = append(instructions, ins)
	}
	m.Instructions = instructions
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	raw := manifestJSON{Instructions: make([]instructionJSON, 0, len(m.Instructions))}
	for i, ins := range m.Instructions {
		entry, err := encodeInstruction(ins)
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		raw.Instructions = append(raw.Instructions, entry)
	}
	return json.Marshal(&raw)
}

func (j *instructionJSON) amount() (decimal.Decimal, error) {
	if j.Amount == nil {
		return decimal.Decimal{}, errors.Errorf("%s requires an amount", j.Type)
	}
	return *j.Amount, nil
}

func (j *instructionJSON) bucketID() (types.BucketID, error) {
	if j.BucketID == nil {
		return 0, errors.Errorf("%s requires a bucket_id", j.Type)
	}
	return *j.BucketID, nil
}

func (j *instructionJSON) proofID() types.ProofID {
	if j.ProofID == nil {
		return 0
	}
	return *j.ProofID
}

func (j *instructionJSON) decode() (types.Instruction, error) {
	switch j.Type {
	case "take_all_from_worktop":
		return &types.TakeAllFromWorktop{ResourceAddress: j.ResourceAddress}, nil
	case "take_from_worktop":
		amount, err := j.amount()
		if err != nil {
			return nil, err
		}
		return &types.TakeFromWorktop{ResourceAddress: j.ResourceAddress, Amount: amount}, nil
	case "take_non_fungibles_from_worktop":
		return &types.TakeNonFungiblesFromWorktop{ResourceAddress: j.ResourceAddress, Ids: j.Ids}, nil
	case "return_to_worktop":
		id, err := j.bucketID()
		if err != nil {
			return nil, err
		}
		return &types.ReturnToWorktop{BucketID: id}, nil
	case "assert_worktop_contains_any":
		return &types.AssertWorktopContainsAny{ResourceAddress: j.ResourceAddress}, nil
	case "assert_worktop_contains":
		amount, err := j.amount()
		if err != nil {
			return nil, err
		}
		return &types.AssertWorktopContains{ResourceAddress: j.ResourceAddress, Amount: amount}, nil
	case "assert_worktop_contains_non_fungibles":
		return &types.AssertWorktopContainsNonFungibles{ResourceAddress: j.ResourceAddress, Ids: j.Ids}, nil
	case "pop_from_auth_zone":
		return &types.PopFromAuthZone{}, nil
	case "push_to_auth_zone":
		return &types.PushToAuthZone{ProofID: j.proofID()}, nil
	case "create_proof_from_auth_zone_of_amount":
		amount, err := j.amount()
		if err != nil {
			return nil, err
		}
		return &types.CreateProofFromAuthZoneOfAmount{ResourceAddress: j.ResourceAddress, Amount: amount}, nil
	case "create_proof_from_auth_zone_of_non_fungibles":
		return &types.CreateProofFromAuthZoneOfNonFungibles{ResourceAddress: j.ResourceAddress, Ids: j.Ids}, nil
	case "create_proof_from_auth_zone_of_all":
		return &types.CreateProofFromAuthZoneOfAll{ResourceAddress: j.ResourceAddress}, nil
	case "drop_auth_zone_proofs":
		return &types.DropAuthZoneProofs{}, nil
	case "drop_auth_zone_regular_proofs":
		return &types.DropAuthZoneRegularProofs{}, nil
	case "drop_auth_zone_signature_proofs":
		return &types.DropAuthZoneSignatureProofs{}, nil
	case "clone_proof":
		return &types.CloneProof{ProofID: j.proofID()}, nil
	case "drop_proof":
		return &types.DropProof{ProofID: j.proofID()}, nil
	case "drop_named_proofs":
		return &types.DropNamedProofs{}, nil
	case "drop_all_proofs":
		return &types.DropAllProofs{}, nil
	case "allocate_global_address":
		return &types.AllocateGlobalAddress{PackageAddress: j.PackageAddress, BlueprintName: j.BlueprintName}, nil
	case "create_proof_from_bucket_of_amount":
		id, err := j.bucketID()
		if err != nil {
			return nil, err
		}
		amount, err := j.amount()
		if err != nil {
			return nil, err
		}
		return &types.CreateProofFromBucketOfAmount{BucketID: id, Amount: amount}, nil
	case "create_proof_from_bucket_of_non_fungibles":
		id, err := j.bucketID()
		if err != nil {
			return nil, err
		}
		return &types.CreateProofFromBucketOfNonFungibles{BucketID: id, Ids: j.Ids}, nil
	case "create_proof_from_bucket_of_all":
		id, err := j.bucketID()
		if err != nil {
			return nil, err
		}
		return &types.CreateProofFromBucketOfAll{BucketID: id}, nil
	case "burn_resource":
		id, err := j.bucketID()
		if err != nil {
			return nil, err
		}
		return &types.BurnResource{BucketID: id}, nil
	case "call_method":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallMethod{Address: j.Address, Method: j.Method, Args: args}, nil
	case "call_function":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallFunction{
			PackageAddress: j.PackageAddress,
			BlueprintName:  j.BlueprintName,
			FunctionName:   j.FunctionName,
			Args:           args,
		}, nil
	case "call_royalty_method":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallRoyaltyMethod{Address: j.Address, Method: j.Method, Args: args}, nil
	case "call_metadata_method":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallMetadataMethod{Address: j.Address, Method: j.Method, Args: args}, nil
	case "call_role_assignment_method":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallRoleAssignmentMethod{Address: j.Address, Method: j.Method, Args: args}, nil
	case "call_direct_vault_method":
		args, err := decodeArgs(j.Args)
		if err != nil {
			return nil, err
		}
		return &types.CallDirectVaultMethod{Address: j.Address, Method: j.Method, Args: args}, nil
	}
	return nil, errors.Errorf("unknown instruction type %q", j.Type)
}

func decodeArgs(raw []callArgJSON) ([]types.CallArg, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	args := make([]types.CallArg, 0, len(raw))
	for i, entry := range raw {
		switch entry.Type {
		case "address":
			args = append(args, types.AddressArg(entry.Address))
		case "amount":
			if entry.Amount == nil {
				return nil, errors.Errorf("arg %d: amount arg requires an amount", i)
			}
			args = append(args, types.AmountArg(*entry.Amount))
		case "ids":
			args = append(args, types.IdsArg(entry.Ids))
		case "bucket":
			if entry.Bucket == nil {
				return nil, errors.Errorf("arg %d: bucket arg requires a bucket", i)
			}
			args = append(args, types.BucketArg(*entry.Bucket))
		case "opaque":
			args = append(args, types.OpaqueArg())
		default:
			return nil, errors.Errorf("arg %d: unknown arg type %q", i, entry.Type)
		}
	}
	return args, nil
}

func encodeArgs(args []types.CallArg) []callArgJSON {
	if len(args) == 0 {
		return nil
	}
	out := make([]callArgJSON, 0, len(args))
	for _, arg := range args {
		switch arg.Kind {
		case types.ArgAddress:
			out = append(out, callArgJSON{Type: "address", Address: arg.Address})
		case types.ArgAmount:
			amount := arg.Amount
			out = append(out, callArgJSON{Type: "amount", Amount: &amount})
		case types.ArgIds:
			out = append(out, callArgJSON{Type: "ids", Ids: arg.Ids})
		case types.ArgBucket:
			bucket := arg.Bucket
			out = append(out, callArgJSON{Type: "bucket", Bucket: &bucket})
		default:
			out = append(out, callArgJSON{Type: "opaque"})
		}
	}
	return out
}

func encodeInstruction(ins types.Instruction) (instructionJSON, error) {
	entry := instructionJSON{Type: types.InstructionName(ins)}
	switch v := ins.(type) {
	case *types.TakeAllFromWorktop:
		entry.ResourceAddress = v.ResourceAddress
	case *types.TakeFromWorktop:
		entry.ResourceAddress = v.ResourceAddress
		amount := v.Amount
		entry.Amount = &amount
	case *types.TakeNonFungiblesFromWorktop:
		entry.ResourceAddress = v.ResourceAddress
		entry.Ids = v.Ids
	case *types.ReturnToWorktop:
		id := v.BucketID
		entry.BucketID = &id
	case *types.AssertWorktopContainsAny:
		entry.ResourceAddress = v.ResourceAddress
	case *types.AssertWorktopContains:
		entry.ResourceAddress = v.ResourceAddress
		amount := v.Amount
		entry.Amount = &amount
	case *types.AssertWorktopContainsNonFungibles:
		entry.ResourceAddress = v.ResourceAddress
		entry.Ids = v.Ids
	case *types.PopFromAuthZone,
		*types.DropAuthZoneProofs,
		*types.DropAuthZoneRegularProofs,
		*types.DropAuthZoneSignatureProofs,
		*types.DropNamedProofs,
		*types.DropAllProofs:
		// no payload
	case *types.PushToAuthZone:
		id := v.ProofID
		entry.ProofID = &id
	case *types.CreateProofFromAuthZoneOfAmount:
		entry.ResourceAddress = v.ResourceAddress
		amount := v.Amount
		entry.Amount = &amount
	case *types.CreateProofFromAuthZoneOfNonFungibles:
		entry.ResourceAddress = v.ResourceAddress
		entry.Ids = v.Ids
	case *types.CreateProofFromAuthZoneOfAll:
		entry.ResourceAddress = v.ResourceAddress
	case *types.CloneProof:
		id := v.ProofID
		entry.ProofID = &id
	case *types.DropProof:
		id := v.ProofID
		entry.ProofID = &id
	case *types.AllocateGlobalAddress:
		entry.PackageAddress = v.PackageAddress
		entry.BlueprintName = v.BlueprintName
	case *types.CreateProofFromBucketOfAmount:
		id := v.BucketID
		entry.BucketID = &id
		amount := v.Amount
		entry.Amount = &amount
	case *types.CreateProofFromBucketOfNonFungibles:
		id := v.BucketID
		entry.BucketID = &id
		entry.Ids = v.Ids
	case *types.CreateProofFromBucketOfAll:
		id := v.BucketID
		entry.BucketID = &id
	case *types.BurnResource:
		id := v.BucketID
		entry.BucketID = &id
	case *types.CallMethod:
		entry.Address = v.Address
		entry.Method = v.Method
		entry.Args = encodeArgs(v.Args)
	case *types.CallFunction:
		entry.PackageAddress = v.PackageAddress
		entry.BlueprintName = v.BlueprintName
		entry.FunctionName = v.FunctionName
		entry.Args = encodeArgs(v.Args)
	case *types.CallRoyaltyMethod:
		entry.Address = v.Address
		entry.Method = v.Method
		entry.Args = encodeArgs(v.Args)
	case *types.CallMetadataMethod:
		entry.Address = v.Address
		entry.Method = v.Method
		entry.Args = encodeArgs(v.Args)
	case *types.CallRoleAssignmentMethod:
		entry.Address = v.Address
		entry.Method = v.Method
		entry.Args = encodeArgs(v.Args)
	case *types.CallDirectVaultMethod:
		entry.Address = v.Address
		entry.Method = v.Method
		entry.Args = encodeArgs(v.Args)
	default:
		return instructionJSON{}, errors.Errorf("unknown instruction variant %T", ins)
	}
	return entry, nil
}
