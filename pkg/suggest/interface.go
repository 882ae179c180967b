// Package suggest proposes completions for the last, partially typed word of an
// input, rendering each candidate through the conversion engine.
package suggest

// Suggester defines the interface for completion engines
type Suggester interface {
	// Suggest returns at most limit rendered completions for partial
	Suggest(partial string, limit int) []string

	// Stats returns counters about the index and its render cache
	Stats() map[string]int
}
