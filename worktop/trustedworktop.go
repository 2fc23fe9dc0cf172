package worktop

import (
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

var tlog = log.New("module", "worktop.trusted")

// TrustedWorktop walks a manifest's instructions once, front to back, and
// classifies each one as trusted or not. An instruction is trusted when the
// exact resources it moves are statically known. The walk drives two
// trackers, one for the shared worktop pool and one for the bucket set;
// each degrades irreversibly to untracked the first time it sees an effect
// it cannot characterize.
//
// The analyzer holds no state beyond one run, a fresh TrustedWorktop must
// be constructed per manifest.
type TrustedWorktop struct {
	records    []types.TrustedInstructionRecord
	worktop    *WorktopContentTracker
	buckets    *BucketTracker
	classifier *Classifier
}

// NewTrustedWorktop uses the built in call classification table.
func NewTrustedWorktop() *TrustedWorktop {
	return NewTrustedWorktopWithClassifier(NewClassifier())
}

// NewTrustedWorktopWithClassifier lets callers extend the table, usually
// via a rule file.
func NewTrustedWorktopWithClassifier(classifier *Classifier) *TrustedWorktop {
	return &TrustedWorktop{
		worktop:    NewWorktopContentTracker(),
		buckets:    NewBucketTracker(),
		classifier: classifier,
	}
}

// Analyze classifies every instruction of a manifest with the built in
// table. The returned records are index aligned with the instructions.
func Analyze(instructions []types.Instruction) ([]types.TrustedInstructionRecord, error) {
	return NewTrustedWorktop().Run(instructions)
}

// Run processes the whole instruction sequence. The only error condition is
// a malformed manifest (a consumed or never created bucket id referenced
// while the bucket set is tracked); classification outcomes are data, not
// errors. On error no partial output is returned since the verdicts after
// the violation would not describe the actual instruction stream.
func (tw *TrustedWorktop) Run(instructions []types.Instruction) ([]types.TrustedInstructionRecord, error) {
	for i, ins := range instructions {
		if err := tw.OnInstruction(ins, i); err != nil {
			return nil, errors.Wrapf(err, "instruction %d (%s)", i, types.InstructionName(ins))
		}
		if len(tw.records) != i+1 {
			return nil, errors.Wrapf(types.ErrRecordMismatch, "instruction %d", i)
		}
	}
	return tw.Output(), nil
}

// Output returns the records accumulated so far, one per instruction seen.
func (tw *TrustedWorktop) Output() []types.TrustedInstructionRecord {
	return tw.records
}

// WorktopUntracked reports the final worktop tracker mode, for diagnostics.
func (tw *TrustedWorktop) WorktopUntracked() bool {
	return tw.worktop.IsUntrackedMode()
}

// BucketsUntracked reports the final bucket tracker mode, for diagnostics.
func (tw *TrustedWorktop) BucketsUntracked() bool {
	return tw.buckets.IsUntrackedMode()
}

// OnInstruction applies exactly one policy and appends exactly one record.
func (tw *TrustedWorktop) OnInstruction(ins types.Instruction, index int) error {
	switch v := ins.(type) {
	case *types.TakeAllFromWorktop:
		if !tw.worktop.IsUntrackedMode() {
			if res, ok := tw.worktop.TakeAllOf(v.ResourceAddress); ok {
				tw.buckets.NewBucketKnownResources(res)
				tw.record(true, &res)
				return nil
			}
		}
		// nothing pooled for the address, or pool not tracked
		tw.buckets.NewBucketUnknownResources()
		tw.record(false, nil)

	case *types.TakeFromWorktop:
		tw.takeKnown(types.NewAmountSpecifier(v.ResourceAddress, v.Amount))

	case *types.TakeNonFungiblesFromWorktop:
		tw.takeKnown(types.NewIdsSpecifier(v.ResourceAddress, v.Ids))

	case *types.ReturnToWorktop:
		return tw.returnToWorktop(v.BucketID)

	case *types.AssertWorktopContainsAny,
		*types.AssertWorktopContains,
		*types.AssertWorktopContainsNonFungibles,
		*types.PopFromAuthZone,
		*types.PushToAuthZone,
		*types.CreateProofFromAuthZoneOfAmount,
		*types.CreateProofFromAuthZoneOfNonFungibles,
		*types.CreateProofFromAuthZoneOfAll,
		*types.DropAuthZoneProofs,
		*types.DropAuthZoneRegularProofs,
		*types.DropAuthZoneSignatureProofs,
		*types.CloneProof,
		*types.DropProof,
		*types.DropNamedProofs,
		*types.DropAllProofs,
		*types.AllocateGlobalAddress:
		// never touch the worktop and never consume a bucket
		tw.record(true, nil)

	case *types.CreateProofFromBucketOfAmount:
		// does not consume the bucket
		if res, ok := tw.buckets.TryConsumeFungibleFromBucket(v.BucketID, v.Amount); ok {
			tw.record(true, &res)
		} else {
			tw.record(false, nil)
		}

	case *types.CreateProofFromBucketOfNonFungibles:
		// does not consume the bucket
		if res, ok := tw.buckets.TryConsumeNonFungibleFromBucket(v.BucketID, v.Ids); ok {
			tw.record(true, &res)
		} else {
			tw.record(false, nil)
		}

	case *types.CreateProofFromBucketOfAll:
		return tw.consumeBucket(v.BucketID)

	case *types.BurnResource:
		return tw.consumeBucket(v.BucketID)

	case *types.CallMethod:
		return tw.handleCallMethod(v)

	case *types.CallFunction:
		// blueprint functions can instantiate anything and return anything
		tlog.Debug("unclassified function call",
			"package", v.PackageAddress, "blueprint", v.BlueprintName, "function", v.FunctionName)
		tw.worktop.EnterUntrackedMode()
		tw.buckets.EnterUntrackedMode()
		tw.record(false, nil)

	case *types.CallRoyaltyMethod, *types.CallMetadataMethod, *types.CallRoleAssignmentMethod:
		// these method families never move resources
		tw.record(true, nil)

	case *types.CallDirectVaultMethod:
		// mutates an arbitrary vault outside every modeled pathway
		tw.worktop.EnterUntrackedMode()
		tw.buckets.EnterUntrackedMode()
		tw.record(false, nil)

	default:
		return errors.Errorf("unhandled instruction variant %T at index %d", ins, index)
	}
	return nil
}

// takeKnown covers the take-by-amount and take-by-ids policies: an exact
// take succeeds only while the worktop is tracked and the pool covers the
// request with matching arithmetic. A failed take does not degrade the
// worktop, the rest of the pool may still be exactly known.
func (tw *TrustedWorktop) takeKnown(res types.ResourceSpecifier) {
	if !tw.worktop.IsUntrackedMode() && tw.worktop.TakeKnown(res) {
		tw.buckets.NewBucketKnownResources(res)
		tw.record(true, &res)
		return
	}
	tw.buckets.NewBucketUnknownResources()
	tw.record(false, nil)
}

func (tw *TrustedWorktop) returnToWorktop(id types.BucketID) error {
	if tw.buckets.IsUntrackedMode() {
		// a resource of unknown identity entered the shared pool
		tw.worktop.EnterUntrackedMode()
		tw.record(false, nil)
		return nil
	}
	content, err := tw.buckets.BucketConsumed(id)
	if err != nil {
		return err
	}
	if content == nil {
		// bucket existed but its content was never known
		tw.worktop.EnterUntrackedMode()
		tw.record(false, nil)
		return nil
	}
	if !tw.worktop.IsUntrackedMode() {
		tw.worktop.Put(*content)
	}
	tw.record(true, content)
	return nil
}

func (tw *TrustedWorktop) consumeBucket(id types.BucketID) error {
	if tw.buckets.IsUntrackedMode() {
		tw.record(false, nil)
		return nil
	}
	content, err := tw.buckets.BucketConsumed(id)
	if err != nil {
		return err
	}
	tw.record(content != nil, content)
	return nil
}

func (tw *TrustedWorktop) handleCallMethod(ins *types.CallMethod) error {
	switch tw.classifier.Classify(ins.Address, ins.Method) {
	case EffectNeutral:
		tw.record(true, nil)
	case EffectPut:
		tw.handlePutCall(ins)
	case EffectTake:
		return tw.handleTakeCall(ins)
	default:
		tlog.Debug("unclassified method call", "address", ins.Address, "method", ins.Method)
		tw.worktop.EnterUntrackedMode()
		tw.buckets.EnterUntrackedMode()
		tw.record(false, nil)
	}
	return nil
}

// handlePutCall covers withdraw style calls. When the decoded arguments
// pin down the exact specifier this is a known put; otherwise an unknown
// quantity lands on the worktop and the pool is poisoned.
func (tw *TrustedWorktop) handlePutCall(ins *types.CallMethod) {
	res, ok := specifierFromArgs(ins.Args)
	if !ok {
		tw.worktop.EnterUntrackedMode()
		tw.record(false, nil)
		return
	}
	if !tw.worktop.IsUntrackedMode() {
		tw.worktop.Put(res)
	}
	tw.record(true, &res)
}

// handleTakeCall covers deposit style calls. Buckets named in the
// arguments are consumed. The verdict is trusted only when every consumed
// bucket had known content and nothing opaque (such as an entire-worktop
// expression) was passed; an opaque or bucketless deposit may sweep the
// worktop, so the pool is poisoned.
func (tw *TrustedWorktop) handleTakeCall(ins *types.CallMethod) error {
	var bucketIDs []types.BucketID
	opaque := false
	for _, arg := range ins.Args {
		switch arg.Kind {
		case types.ArgBucket:
			bucketIDs = append(bucketIDs, arg.Bucket)
		case types.ArgAddress, types.ArgAmount, types.ArgIds:
			// plain values carry no resources
		default:
			opaque = true
		}
	}

	var resources []types.ResourceSpecifier
	known := !tw.buckets.IsUntrackedMode()
	if known {
		for _, id := range bucketIDs {
			content, err := tw.buckets.BucketConsumed(id)
			if err != nil {
				return err
			}
			if content == nil {
				known = false
				continue
			}
			resources = append(resources, *content)
		}
	}

	if opaque || len(bucketIDs) == 0 {
		tw.worktop.EnterUntrackedMode()
		tw.record(false, nil)
		return nil
	}
	if known {
		tw.recordMany(true, resources)
	} else {
		tw.record(false, nil)
	}
	return nil
}

// specifierFromArgs recognizes the argument shapes of the composable
// withdraw family: a resource address followed by one amount or one id
// set. The lock fee variants carry a fee amount before the resource
// address; amounts preceding the address lock fees and move nothing, so
// they are skipped. Anything else fails the match.
func specifierFromArgs(args []types.CallArg) (types.ResourceSpecifier, bool) {
	addrIndex := -1
	for i, arg := range args {
		switch arg.Kind {
		case types.ArgAddress:
			if addrIndex >= 0 {
				return types.ResourceSpecifier{}, false
			}
			addrIndex = i
		case types.ArgAmount, types.ArgIds:
		default:
			return types.ResourceSpecifier{}, false
		}
	}
	if addrIndex < 0 {
		return types.ResourceSpecifier{}, false
	}
	address := args[addrIndex].Address
	var amount *decimal.Decimal
	var ids []types.NonFungibleLocalID
	haveIds := false
	for _, arg := range args[addrIndex+1:] {
		switch arg.Kind {
		case types.ArgAmount:
			if amount != nil || haveIds {
				return types.ResourceSpecifier{}, false
			}
			v := arg.Amount
			amount = &v
		case types.ArgIds:
			if amount != nil || haveIds {
				return types.ResourceSpecifier{}, false
			}
			ids = arg.Ids
			haveIds = true
		}
	}
	if amount != nil {
		return types.NewAmountSpecifier(address, *amount), true
	}
	if haveIds {
		return types.NewIdsSpecifier(address, ids), true
	}
	return types.ResourceSpecifier{}, false
}

func (tw *TrustedWorktop) record(trusted bool, res *types.ResourceSpecifier) {
	var resources []types.ResourceSpecifier
	if res != nil {
		resources = []types.ResourceSpecifier{*res}
	}
	tw.recordMany(trusted, resources)
}

func (tw *TrustedWorktop) recordMany(trusted bool, resources []types.ResourceSpecifier) {
	tw.records = append(tw.records, types.NewTrustedInstructionRecord(trusted, resources))
}
