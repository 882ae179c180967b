package phonetic

import (
	"strings"
	"unicode"
)

// normalize collapses whitespace runs to one space and trims both ends.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// fixCase lower-cases every rune except those whose lower-case form is in
// the ruleset's case-sensitive class.
func (e *Engine) fixCase(text string) string {
	return strings.Map(func(r rune) rune {
		if e.rules.IsCaseSensitive(r) {
			return r
		}
		return unicode.ToLower(r)
	}, text)
}
