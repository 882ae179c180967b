package phonetic

import (
	"slices"

	"github.com/bastiangx/phonetype/pkg/ruleset"
)

// choose returns the replacement of the first rule whose matches all pass,
// falling back to the pattern's default.
func (e *Engine) choose(p *ruleset.Pattern, text []rune, cur, curEnd int) string {
	for _, rule := range p.Rules {
		if e.allPass(rule.Matches, text, cur, curEnd) {
			return rule.Replace
		}
	}
	return p.Replace
}

func (e *Engine) allPass(matches []ruleset.Match, text []rune, cur, curEnd int) bool {
	for _, m := range matches {
		if !e.check(m, text, cur, curEnd) {
			return false
		}
	}
	return true
}

// check evaluates one condition against the span text[cur:curEnd].
func (e *Engine) check(m ruleset.Match, text []rune, cur, curEnd int) bool {
	// the first character never counts as a prefix neighbour unless the
	// inclusive bound is on
	pos := max(cur-1, 0)
	inBounds := pos >= 1 || (e.inclusivePrefixBound && cur >= 1)
	if m.Side == ruleset.Suffix {
		pos, inBounds = curEnd, curEnd < len(text)
	}

	switch m.Scope {
	case ruleset.ScopePunctuation:
		// the text boundary counts as punctuation
		return (!inBounds || e.rules.IsPunctuation(text[pos])) != m.Negated
	case ruleset.ScopeVowel:
		return inBounds && e.rules.IsVowel(text[pos]) != m.Negated
	case ruleset.ScopeConsonant:
		return inBounds && e.rules.IsConsonant(text[pos]) != m.Negated
	case ruleset.ScopeExact:
		return e.exact(m, text, cur, curEnd) != m.Negated
	default:
		return true
	}
}

// exact compares m.Value with the runes right before cur or right after curEnd.
func (e *Engine) exact(m ruleset.Match, text []rune, cur, curEnd int) bool {
	n := len(m.Value)
	start := cur - n
	if m.Side == ruleset.Suffix {
		start = curEnd
	}
	end := start + n
	if start < 0 || end > len(text) {
		return false
	}
	if m.Side == ruleset.Suffix && e.legacyExactBound && end == len(text) {
		return false
	}
	return slices.Equal(text[start:end], m.Value)
}
