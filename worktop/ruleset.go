package worktop

import (
	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/Krulknul/radix-engine-toolkit/types"
)

// RuleSet extends the built in call classification table from a toml file.
// Deployments use it to register additional well known component methods
// without forking the analyzer:
//
//	[[rule]]
//	entity = "component"
//	method = "swap"
//	effect = "take"
type RuleSet struct {
	Rules []Rule `toml:"rule"`
}

type Rule struct {
	Entity string `toml:"entity"`
	Method string `toml:"method"`
	Effect string `toml:"effect"`
}

// LoadRuleSet reads and validates a rule file.
func LoadRuleSet(path string) (*RuleSet, error) {
	var rs RuleSet
	if _, err := tml.DecodeFile(path, &rs); err != nil {
		return nil, errors.Wrapf(err, "decode rule file %s", path)
	}
	for i, rule := range rs.Rules {
		if _, err := types.ParseEntityKind(rule.Entity); err != nil {
			return nil, errors.Wrapf(err, "rule %d entity %q", i, rule.Entity)
		}
		if _, err := ParseCallEffect(rule.Effect); err != nil {
			return nil, errors.Wrapf(err, "rule %d effect %q", i, rule.Effect)
		}
		if rule.Method == "" {
			return nil, errors.Errorf("rule %d has empty method", i)
		}
	}
	return &rs, nil
}

// ApplyRuleSet registers every rule. Rules may override built in entries.
func (c *Classifier) ApplyRuleSet(rs *RuleSet) error {
	for _, rule := range rs.Rules {
		entity, err := types.ParseEntityKind(rule.Entity)
		if err != nil {
			return err
		}
		effect, err := ParseCallEffect(rule.Effect)
		if err != nil {
			return err
		}
		c.register(entity, rule.Method, effect)
	}
	return nil
}
