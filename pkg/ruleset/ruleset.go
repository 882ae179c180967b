/*
Package ruleset holds the phonetic conversion table: an ordered list of
find/replace patterns plus the vowel, consonant and case-sensitive character
classes the engine consults while matching.

A Ruleset is compiled once from a Document and is read-only afterwards, so a
single instance can be shared by any number of goroutines.

# Table-authoring contract

Pattern order is significant. When several patterns of the same kind match at
a position, the one declared first wins, regardless of length or specificity.
Tables therefore list longer keys before the shorter keys they extend:

	{"find": "kh", "replace": "খ"},
	{"find": "k",  "replace": "ক"}

Swapping those two lines makes "kh" unreachable.

# Lookups

Pattern keys are indexed in a patricia trie mapping each find to the ascending
declaration indices that share it. FindAt walks the prefixes of the remaining
input and Extending visits the subtree under a partial word.
*/
package ruleset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	// ErrMalformedRules is returned when a rules document cannot be compiled.
	ErrMalformedRules = errors.New("malformed rules")
	// ErrUnknownFormat is returned for rule files with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown rules format")
)

// Side selects which neighbour of a matched span a condition inspects.
type Side int

const (
	Prefix Side = iota
	Suffix
)

func (s Side) String() string {
	if s == Prefix {
		return "prefix"
	}
	return "suffix"
}

func parseSide(s string) (Side, error) {
	switch s {
	case "prefix":
		return Prefix, nil
	case "suffix":
		return Suffix, nil
	default:
		return 0, fmt.Errorf("unknown match type %q", s)
	}
}

// Scope is the predicate kind a Match tests.
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeVowel
	ScopeConsonant
	ScopePunctuation
	ScopeExact
)

var scopeNames = map[string]Scope{
	"vowel":       ScopeVowel,
	"consonant":   ScopeConsonant,
	"punctuation": ScopePunctuation,
	"exact":       ScopeExact,
}

func (s Scope) String() string {
	for name, scope := range scopeNames {
		if scope == s {
			return name
		}
	}
	return "unknown"
}

// parseScope splits a leading negation marker off the raw scope.
func parseScope(raw string) (Scope, bool) {
	negated := strings.HasPrefix(raw, "!")
	if negated {
		raw = raw[1:]
	}
	return scopeNames[raw], negated
}

// Match is one contextual condition of a Rule.
type Match struct {
	Side    Side
	Scope   Scope
	Negated bool
	// Value is the literal compared by ScopeExact.
	Value []rune
}

// Rule is an alternative replacement, chosen when all of its Matches pass.
type Rule struct {
	Matches []Match
	Replace string
}

// Pattern is a compiled find/replace pair.
type Pattern struct {
	Find    string
	Replace string
	Rules   []Rule

	guarded bool
	width   int
}

// Guarded reports whether the pattern carries contextual rules.
func (p *Pattern) Guarded() bool { return p.guarded }

// Width is the number of runes the pattern consumes.
func (p *Pattern) Width() int { return p.width }

// Ruleset is the immutable conversion table.
type Ruleset struct {
	meta          Meta
	patterns      []Pattern
	vowels        map[rune]struct{}
	consonants    map[rune]struct{}
	caseSensitive map[rune]struct{}
	index         *patricia.Trie
	maxFind       int
}

// Compile validates a Document and builds its Ruleset.
func Compile(doc *Document) (*Ruleset, error) {
	if doc == nil || len(doc.Patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrMalformedRules)
	}

	rs := &Ruleset{
		meta:          doc.Meta,
		patterns:      make([]Pattern, 0, len(doc.Patterns)),
		vowels:        runeSet(doc.Vowels),
		consonants:    runeSet(doc.Consonants),
		caseSensitive: runeSet(doc.CaseSensitive),
		index:         patricia.NewTrie(),
	}

	for i, spec := range doc.Patterns {
		if spec.Find == "" {
			return nil, fmt.Errorf("%w: pattern %d has an empty find", ErrMalformedRules, i)
		}
		p := Pattern{
			Find:    spec.Find,
			Replace: spec.Replace,
			guarded: spec.Rules != nil,
			width:   utf8.RuneCountInString(spec.Find),
		}
		for j, ruleSpec := range spec.Rules {
			rule := Rule{
				Replace: ruleSpec.Replace,
				Matches: make([]Match, 0, len(ruleSpec.Matches)),
			}
			for k, matchSpec := range ruleSpec.Matches {
				m, err := compileMatch(matchSpec)
				if err != nil {
					return nil, fmt.Errorf("%w: pattern %q rule %d match %d: %v",
						ErrMalformedRules, spec.Find, j, k, err)
				}
				if m.Scope == ScopeUnknown {
					log.Warn("Match condition always passes", "find", spec.Find, "rule", j, "scope", matchSpec.Scope)
				}
				rule.Matches = append(rule.Matches, m)
			}
			p.Rules = append(p.Rules, rule)
		}
		rs.patterns = append(rs.patterns, p)
		rs.insert(p.Find, i)
	}

	log.Debugf("Compiled ruleset %q: %d patterns, longest key %d bytes", rs.meta.Name, len(rs.patterns), rs.maxFind)
	return rs, nil
}

func compileMatch(spec MatchSpec) (Match, error) {
	side, err := parseSide(spec.Type)
	if err != nil {
		return Match{}, err
	}
	scope, negated := parseScope(spec.Scope)
	m := Match{Side: side, Scope: scope, Negated: negated}
	if scope == ScopeExact {
		if spec.Value == nil {
			// nothing to compare against
			m.Scope = ScopeUnknown
			return m, nil
		}
		m.Value = []rune(*spec.Value)
	}
	return m, nil
}

func (rs *Ruleset) insert(find string, i int) {
	key := patricia.Prefix(find)
	if item := rs.index.Get(key); item != nil {
		rs.index.Set(key, append(item.([]int), i))
	} else {
		rs.index.Insert(key, []int{i})
	}
	if len(find) > rs.maxFind {
		rs.maxFind = len(find)
	}
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// Meta returns the descriptive header of the source document.
func (rs *Ruleset) Meta() Meta { return rs.meta }

// Len returns the number of patterns.
func (rs *Ruleset) Len() int { return len(rs.patterns) }

// Pattern returns the pattern declared at index i.
func (rs *Ruleset) Pattern(i int) *Pattern { return &rs.patterns[i] }

// Patterns returns all patterns in declaration order. Callers must not modify them.
func (rs *Ruleset) Patterns() []Pattern { return rs.patterns }

// FindAt returns the lowest declaration index of a direct pattern and of a
// rule-guarded pattern whose find is a prefix of s. Either is -1 when absent.
func (rs *Ruleset) FindAt(s string) (direct, guarded int) {
	direct, guarded = -1, -1
	limit := min(rs.maxFind, len(s))
	for n := 1; n <= limit; n++ {
		item := rs.index.Get(patricia.Prefix(s[:n]))
		if item == nil {
			continue
		}
		for _, i := range item.([]int) {
			if rs.patterns[i].guarded {
				if guarded < 0 || i < guarded {
					guarded = i
				}
			} else if direct < 0 || i < direct {
				direct = i
			}
		}
	}
	return direct, guarded
}

// Extending returns, in declaration order, the indices of patterns whose
// find starts with prefix and is longer than it.
func (rs *Ruleset) Extending(prefix string) []int {
	var out []int
	err := rs.index.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == prefix {
			return nil
		}
		out = append(out, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting pattern index: %v", err)
		return nil
	}
	sort.Ints(out)
	return out
}

// IsVowel reports whether the lower-cased r is in the vowel class.
func (rs *Ruleset) IsVowel(r rune) bool {
	_, ok := rs.vowels[unicode.ToLower(r)]
	return ok
}

// IsConsonant reports whether the lower-cased r is in the consonant class.
func (rs *Ruleset) IsConsonant(r rune) bool {
	_, ok := rs.consonants[unicode.ToLower(r)]
	return ok
}

// IsPunctuation reports whether r is neither a vowel nor a consonant.
func (rs *Ruleset) IsPunctuation(r rune) bool {
	return !rs.IsVowel(r) && !rs.IsConsonant(r)
}

// IsCaseSensitive reports whether the lower-cased r keeps its case during input folding.
func (rs *Ruleset) IsCaseSensitive(r rune) bool {
	_, ok := rs.caseSensitive[unicode.ToLower(r)]
	return ok
}
