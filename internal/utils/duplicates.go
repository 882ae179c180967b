package utils

// SuggestionFilter drops rendered suggestions that were already emitted.
// Comparison is exact; converted text has no case to fold.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter creates an empty filter sized for about hint entries.
func NewSuggestionFilter(hint int) *SuggestionFilter {
	return &SuggestionFilter{
		seen: make(map[string]struct{}, max(hint, 0)),
	}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	if _, dup := f.seen[word]; dup {
		return false
	}
	f.seen[word] = struct{}{}
	return true
}

// Len reports how many distinct words were accepted.
func (f *SuggestionFilter) Len() int {
	return len(f.seen)
}
