package automap

import (
	"fmt"
	"strings"

	"github.com/milk9111/mapedit/tile"
	"gopkg.in/yaml.v3"
)

// RuleFileSpec is the on-disk form of <image>.rules.yaml.
type RuleFileSpec struct {
	Image    string        `yaml:"image"`
	RuleSets []RuleSetSpec `yaml:"rulesets"`
}

type RuleSetSpec struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Outside string `yaml:"outside"`

	// kind: rules
	Rules []RuleSpec `yaml:"rules"`

	// kind: blob47
	BaseTile int   `yaml:"base_tile"`
	Indices  []int `yaml:"indices"`

	// kind: script
	Script string `yaml:"script"`
}

type RuleSpec struct {
	Index      int             `yaml:"index"`
	Flags      FlagsSpec       `yaml:"flags"`
	Random     int             `yaml:"random"`
	Conditions []ConditionSpec `yaml:"conditions"`
}

type ConditionSpec struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Match string `yaml:"match"`
	Index int    `yaml:"index"`
	Not   bool   `yaml:"not"`
}

// FlagsSpec accepts either a list of flag names or a raw number.
type FlagsSpec struct {
	tile.Flags
}

var flagNames = map[string]tile.Flags{
	"flip_h": tile.FlagFlipH,
	"flip_v": tile.FlagFlipV,
	"opaque": tile.FlagOpaque,
	"rotate": tile.FlagRotate,
}

func (f *FlagsSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
		if n < 0 || n > 255 {
			return fmt.Errorf("flags %d out of range", n)
		}
		f.Flags = tile.Flags(n)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("flags: %w", err)
		}
		f.Flags = 0
		for _, name := range names {
			bit, ok := flagNames[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("unknown flag %q", name)
			}
			f.Flags |= bit
		}
		return nil
	default:
		return fmt.Errorf("flags must be a number or a list")
	}
}

func parseMatch(s string, def Match) (Match, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "full":
		return MatchFull, nil
	case "empty":
		return MatchEmpty, nil
	case "index":
		return MatchIndex, nil
	default:
		return 0, fmt.Errorf("unknown match %q", s)
	}
}

// ParseRuleFile builds a Mapper from a rule file. loadScript resolves the
// script files referenced by script rulesets.
func ParseRuleFile(name string, data []byte, loadScript func(string) ([]byte, error)) (*Mapper, error) {
	var spec RuleFileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("automap: unmarshal %s: %w", name, err)
	}
	if spec.Image == "" {
		return nil, fmt.Errorf("automap: %s: missing image name", name)
	}

	m := &Mapper{Image: spec.Image}
	for i, rs := range spec.RuleSets {
		built, err := buildRuleSet(rs, loadScript)
		if err != nil {
			return nil, fmt.Errorf("automap: %s ruleset %d: %w", name, i, err)
		}
		m.RuleSets = append(m.RuleSets, built)
	}
	return m, nil
}

func buildRuleSet(spec RuleSetSpec, loadScript func(string) ([]byte, error)) (RuleSet, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	outside, err := parseMatch(spec.Outside, MatchFull)
	if err != nil {
		return nil, err
	}
	if outside == MatchIndex {
		return nil, fmt.Errorf("outside can only be full or empty")
	}

	switch spec.Kind {
	case "", "rules":
		rules := make([]Rule, 0, len(spec.Rules))
		for ri, r := range spec.Rules {
			if r.Index < 0 || r.Index > 255 {
				return nil, fmt.Errorf("rule %d: index %d out of range", ri, r.Index)
			}
			rule := Rule{Index: uint8(r.Index), Flags: r.Flags.Flags, Random: r.Random}
			for _, c := range r.Conditions {
				match, err := parseMatch(c.Match, MatchFull)
				if err != nil {
					return nil, fmt.Errorf("rule %d: %w", ri, err)
				}
				if c.Index < 0 || c.Index > 255 {
					return nil, fmt.Errorf("rule %d: condition index %d out of range", ri, c.Index)
				}
				rule.Conditions = append(rule.Conditions, Condition{
					X: c.X, Y: c.Y, Match: match, Index: uint8(c.Index), Not: c.Not,
				})
			}
			rules = append(rules, rule)
		}
		return NewRules(spec.Name, outside, rules), nil
	case "blob47":
		return NewBlob47(spec.Name, spec.BaseTile, spec.Indices, outside)
	case "script":
		if spec.Script == "" {
			return nil, fmt.Errorf("script ruleset %s: missing script", spec.Name)
		}
		src, err := loadScript(spec.Script)
		if err != nil {
			return nil, err
		}
		return NewScript(spec.Name, spec.Script, src)
	default:
		return nil, fmt.Errorf("unknown ruleset kind %q", spec.Kind)
	}
}
