package worktop

import "github.com/Krulknul/radix-engine-toolkit/types"

// CallEffect classifies what a well known method call does to the worktop.
type CallEffect int32

const (
	// EffectUnclassified means the call is not in the table and must be
	// treated as capable of arbitrary worktop and bucket effects.
	EffectUnclassified CallEffect = iota
	// EffectNeutral calls never move resources.
	EffectNeutral
	// EffectPut calls put resources on the worktop (withdraw style).
	EffectPut
	// EffectTake calls take resources off the worktop or out of buckets
	// (deposit style).
	EffectTake
)

func (e CallEffect) String() string {
	switch e {
	case EffectNeutral:
		return "neutral"
	case EffectPut:
		return "put"
	case EffectTake:
		return "take"
	}
	return "unclassified"
}

// ParseCallEffect is the inverse of CallEffect.String for rule files.
func ParseCallEffect(s string) (CallEffect, error) {
	switch s {
	case "neutral":
		return EffectNeutral, nil
	case "put":
		return EffectPut, nil
	case "take":
		return EffectTake, nil
	}
	return EffectUnclassified, types.ErrRuleBadEffect
}

type callKey struct {
	entity types.EntityKind
	method string
}

// The built in table covers the native account blueprint, the only
// component family whose resource movement is composable enough to
// classify by name alone.
var builtinMethodEffects = map[callKey]CallEffect{
	{types.EntityAccount, "withdraw"}:                            EffectPut,
	{types.EntityAccount, "withdraw_non_fungibles"}:              EffectPut,
	{types.EntityAccount, "lock_fee_and_withdraw"}:               EffectPut,
	{types.EntityAccount, "lock_fee_and_withdraw_non_fungibles"}: EffectPut,
	{types.EntityAccount, "deposit"}:                             EffectTake,
	{types.EntityAccount, "deposit_batch"}:                       EffectTake,
	{types.EntityAccount, "try_deposit_or_abort"}:                EffectTake,
	{types.EntityAccount, "try_deposit_batch_or_abort"}:          EffectTake,
	{types.EntityAccount, "lock_fee"}:                            EffectNeutral,
	{types.EntityAccount, "lock_contingent_fee"}:                 EffectNeutral,
	{types.EntityAccount, "create_proof_of_amount"}:              EffectNeutral,
	{types.EntityAccount, "create_proof_of_non_fungibles"}:       EffectNeutral,
	{types.EntityAccount, "set_default_deposit_rule"}:            EffectNeutral,
	{types.EntityAccount, "set_resource_preference"}:             EffectNeutral,
	{types.EntityAccount, "remove_resource_preference"}:          EffectNeutral,
}

// Classifier resolves method calls against the built in table plus any
// rules registered from a rule file. Lookups are by entity kind of the
// callee address and method name.
type Classifier struct {
	effects map[callKey]CallEffect
}

func NewClassifier() *Classifier {
	effects := make(map[callKey]CallEffect, len(builtinMethodEffects))
	for key, effect := range builtinMethodEffects {
		effects[key] = effect
	}
	return &Classifier{effects: effects}
}

// Classify returns EffectUnclassified for anything not in the table.
func (c *Classifier) Classify(address types.GlobalAddress, method string) CallEffect {
	return c.effects[callKey{address.Kind(), method}]
}

func (c *Classifier) register(entity types.EntityKind, method string, effect CallEffect) {
	c.effects[callKey{entity, method}] = effect
}
