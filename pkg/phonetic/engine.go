/*
Package phonetic converts phonetically typed Latin text into Bengali script.

Conversion is a single greedy left-to-right pass over the normalized input. At
every position the engine first looks for a direct pattern, then for a
rule-guarded one, and copies the character through when neither matches.
Within each kind the earliest declared pattern wins. A rule-guarded pattern
emits the replacement of its first rule whose conditions all hold, or its
default replacement otherwise.

The converted text is finally passed through the script normalizer, which
fixes joiner placement around the virama.

An Engine holds no mutable state and may be shared between goroutines.
*/
package phonetic

import (
	"strings"

	"github.com/bastiangx/phonetype/pkg/ruleset"
	"github.com/bastiangx/phonetype/pkg/script"
)

// Engine converts text using one Ruleset.
type Engine struct {
	rules                *ruleset.Ruleset
	script               *script.Normalizer
	legacyExactBound     bool
	inclusivePrefixBound bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLegacyExactBound makes suffix exact conditions fail when their window
// ends exactly at the end of the text. Older tables were tuned against this
// behaviour.
func WithLegacyExactBound() Option {
	return func(e *Engine) {
		e.legacyExactBound = true
	}
}

// WithInclusivePrefixBound lets prefix conditions at the second character
// inspect the first one. By default the first character is treated as a text
// boundary, which is what the bundled table was written against.
func WithInclusivePrefixBound() Option {
	return func(e *Engine) {
		e.inclusivePrefixBound = true
	}
}

// WithScriptNormalizer replaces the default post-processing chain.
func WithScriptNormalizer(n *script.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.script = n
		}
	}
}

// New creates an Engine over rs. A nil rs selects the bundled ruleset.
func New(rs *ruleset.Ruleset, opts ...Option) *Engine {
	if rs == nil {
		rs = ruleset.Default()
	}
	e := &Engine{
		rules:  rs,
		script: script.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the ruleset the engine converts with.
func (e *Engine) Rules() *ruleset.Ruleset {
	return e.rules
}

// Convert transliterates text. It never fails; characters no pattern covers
// are copied through.
func (e *Engine) Convert(text string) string {
	fixed := e.fixCase(normalize(text))
	if fixed == "" {
		return ""
	}

	chars := make([]rune, 0, len(fixed))
	offsets := make([]int, 0, len(fixed))
	for i, r := range fixed {
		chars = append(chars, r)
		offsets = append(offsets, i)
	}

	var out strings.Builder
	out.Grow(len(fixed) * 3)

	curEnd := 0
	for cur := range chars {
		if cur < curEnd {
			continue
		}
		direct, guarded := e.rules.FindAt(fixed[offsets[cur]:])
		switch {
		case direct >= 0:
			p := e.rules.Pattern(direct)
			out.WriteString(p.Replace)
			curEnd = cur + p.Width()
		case guarded >= 0:
			p := e.rules.Pattern(guarded)
			curEnd = cur + p.Width()
			out.WriteString(e.choose(p, chars, cur, curEnd))
		default:
			out.WriteRune(chars[cur])
			curEnd = cur + 1
		}
	}

	return e.script.Normalize(out.String())
}
