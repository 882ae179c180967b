package ruleset

import "encoding/json"

// Document is the serialized form of a rules table. The same schema is read
// from JSON, YAML and TOML.
type Document struct {
	Meta          Meta          `json:"meta" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Vowels        string        `json:"vowel" yaml:"vowel" toml:"vowel"`
	Consonants    string        `json:"consonant" yaml:"consonant" toml:"consonant"`
	CaseSensitive string        `json:"casesensitive" yaml:"casesensitive" toml:"casesensitive"`
	Patterns      []PatternSpec `json:"patterns" yaml:"patterns" toml:"patterns"`
}

// Meta describes where a rules table comes from.
type Meta struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	License     string `json:"license,omitempty" yaml:"license,omitempty" toml:"license,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// PatternSpec is a serialized pattern. A nil Rules slice marks a direct
// pattern; a present but empty list still makes the pattern rule-guarded.
type PatternSpec struct {
	Find    string     `json:"find" yaml:"find" toml:"find"`
	Replace string     `json:"replace" yaml:"replace" toml:"replace"`
	Rules   []RuleSpec `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules"`
}

type directSpec struct {
	Find    string `json:"find" yaml:"find"`
	Replace string `json:"replace" yaml:"replace"`
}

type guardedSpec struct {
	Find    string     `json:"find" yaml:"find"`
	Replace string     `json:"replace" yaml:"replace"`
	Rules   []RuleSpec `json:"rules" yaml:"rules"`
}

// encodable drops the rules key only for direct patterns, so an empty list
// is written as one and decodes back to a guarded pattern.
func (p PatternSpec) encodable() any {
	if p.Rules == nil {
		return directSpec{Find: p.Find, Replace: p.Replace}
	}
	return guardedSpec(p)
}

// MarshalJSON implements json.Marshaler.
func (p PatternSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.encodable())
}

// MarshalYAML implements yaml.Marshaler.
func (p PatternSpec) MarshalYAML() (any, error) {
	return p.encodable(), nil
}

// RuleSpec is a serialized rule.
type RuleSpec struct {
	Matches []MatchSpec `json:"matches" yaml:"matches" toml:"matches"`
	Replace string      `json:"replace" yaml:"replace" toml:"replace"`
}

// MatchSpec is a serialized match condition.
type MatchSpec struct {
	Type  string  `json:"type" yaml:"type" toml:"type"`
	Scope string  `json:"scope" yaml:"scope" toml:"scope"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}
