package ruleset

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed data/rules.json
var bundledRules []byte

// BundledDocument decodes the embedded rules table.
func BundledDocument() (*Document, error) {
	return Decode(bundledRules, FormatJSON)
}

// Bundled compiles the embedded rules table.
func Bundled() (*Ruleset, error) {
	return Parse(bundledRules, FormatJSON)
}

var defaultRules = sync.OnceValue(func() *Ruleset {
	rs, err := Bundled()
	if err != nil {
		// the embedded table is part of the binary; nothing can run without it
		panic(fmt.Sprintf("invalid bundled rules: %v", err))
	}
	return rs
})

// Default returns the process-wide bundled Ruleset, compiling it on first use.
func Default() *Ruleset {
	return defaultRules()
}
