package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/phonetype/internal/utils"
	"github.com/bastiangx/phonetype/pkg/phonetic"
	"github.com/bastiangx/phonetype/pkg/ruleset"
	"github.com/charmbracelet/log"
)

// MinPartialLength is the shortest trailing word, in runes, that gets suggestions.
const MinPartialLength = 2

// Indexer completes the trailing word against the pattern keys of the
// engine's ruleset.
type Indexer struct {
	engine *phonetic.Engine
	rules  *ruleset.Ruleset
	cache  *RenderCache
}

// NewIndexer creates an Indexer. cacheSize bounds the render cache; zero
// disables it.
func NewIndexer(engine *phonetic.Engine, cacheSize int) *Indexer {
	ix := &Indexer{
		engine: engine,
		rules:  engine.Rules(),
		cache:  NewRenderCache(cacheSize),
	}
	log.Debugf("Suggestion index ready over %d patterns, render cache size %d", ix.rules.Len(), cacheSize)
	return ix
}

// Suggest replaces the last word of partial with every pattern key that
// extends it, in declaration order, and returns the distinct conversions of
// the resulting texts.
func (ix *Indexer) Suggest(partial string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	head, last := utils.SplitLastWord(partial)
	if utf8.RuneCountInString(last) < MinPartialLength {
		return []string{}
	}

	filter := utils.NewSuggestionFilter(min(limit, 32))
	suggestions := make([]string, 0, min(limit, 32))

	for _, i := range ix.rules.Extending(last) {
		candidate := joinWords(head, ix.rules.Pattern(i).Find)
		rendered := ix.render(candidate)
		if !filter.ShouldInclude(rendered) {
			continue
		}
		suggestions = append(suggestions, rendered)
		if len(suggestions) >= limit {
			break
		}
	}

	return suggestions
}

func (ix *Indexer) render(candidate string) string {
	if ix.cache == nil {
		return ix.engine.Convert(candidate)
	}
	if out, ok := ix.cache.Get(candidate); ok {
		return out
	}
	out := ix.engine.Convert(candidate)
	ix.cache.Put(candidate, out)
	return out
}

// Stats reports the pattern count and, with a cache, its counters.
func (ix *Indexer) Stats() map[string]int {
	stats := map[string]int{
		"patterns": ix.rules.Len(),
	}
	if ix.cache != nil {
		for k, v := range ix.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

func joinWords(head, word string) string {
	if head == "" {
		return word
	}
	return strings.Join([]string{head, word}, " ")
}
