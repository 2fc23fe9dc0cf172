package worktop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

var (
	testAccount   = types.GlobalAddress("account_rdx128y6j78mt0aqv6372evz28hrxp8mn06ccddkr7xppc88hyvynvjdwr")
	testComponent = types.GlobalAddress("component_rdx1cqvgx33089ukm2pl97pv4max4x0e3ah3cynqcvq8q9whx6ymsv3jc0")
)

func TestBuiltinClassification(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, EffectPut, c.Classify(testAccount, "withdraw"))
	assert.Equal(t, EffectPut, c.Classify(testAccount, "withdraw_non_fungibles"))
	assert.Equal(t, EffectTake, c.Classify(testAccount, "deposit"))
	assert.Equal(t, EffectTake, c.Classify(testAccount, "try_deposit_batch_or_abort"))
	assert.Equal(t, EffectNeutral, c.Classify(testAccount, "lock_fee"))

	// method names classify only together with the entity kind
	assert.Equal(t, EffectUnclassified, c.Classify(testComponent, "withdraw"))
	assert.Equal(t, EffectUnclassified, c.Classify(testAccount, "securify"))
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRuleSetExtendsTable(t *testing.T) {
	path := writeRules(t, `
[[rule]]
entity = "component"
method = "swap"
effect = "take"

[[rule]]
entity = "account"
method = "lock_fee"
effect = "put"
`)

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 2)

	c := NewClassifier()
	require.NoError(t, c.ApplyRuleSet(rs))
	assert.Equal(t, EffectTake, c.Classify(testComponent, "swap"))
	// rules may override built in entries
	assert.Equal(t, EffectPut, c.Classify(testAccount, "lock_fee"))
}

func TestRuleSetRejectsBadEffect(t *testing.T) {
	path := writeRules(t, `
[[rule]]
entity = "component"
method = "swap"
effect = "teleport"
`)

	_, err := LoadRuleSet(path)
	assert.ErrorIs(t, err, types.ErrRuleBadEffect)
}

func TestRuleSetRejectsBadEntity(t *testing.T) {
	path := writeRules(t, `
[[rule]]
entity = "wallet"
method = "swap"
effect = "take"
`)

	_, err := LoadRuleSet(path)
	assert.ErrorIs(t, err, types.ErrRuleBadEntity)
}

func TestRuleSetRejectsEmptyMethod(t *testing.T) {
	path := writeRules(t, `
[[rule]]
entity = "component"
method = ""
effect = "take"
`)

	_, err := LoadRuleSet(path)
	assert.Error(t, err)
}

func TestParseCallEffect(t *testing.T) {
	for _, effect := range []CallEffect{EffectNeutral, EffectPut, EffectTake} {
		parsed, err := ParseCallEffect(effect.String())
		require.NoError(t, err)
		assert.Equal(t, effect, parsed)
	}
	_, err := ParseCallEffect("unclassified")
	assert.ErrorIs(t, err, types.ErrRuleBadEffect)
}
