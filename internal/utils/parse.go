package utils

import (
	"maps"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile loads and parses a TOML file into the provided struct
func LoadTOMLFile(configPath string, config any) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery parses a TOML file into a generic map. When the file as
// a whole does not parse, each [section] is decoded on its own and the ones
// that parse are kept.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	result := make(map[string]any)
	_, fullErr := toml.Decode(string(data), &result)
	if fullErr == nil {
		return result, nil
	}

	recovered := 0
	for _, chunk := range SplitTOMLSections(string(data)) {
		part := make(map[string]any)
		if _, err := toml.Decode(chunk, &part); err != nil {
			log.Warnf("Skipping unparseable config section in %s: %v", configPath, err)
			continue
		}
		maps.Copy(result, part)
		recovered++
	}
	if recovered == 0 {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, fullErr)
		return nil, fullErr
	}
	return result, nil
}

// SplitTOMLSections cuts a TOML document before every table header line.
// Keys above the first header form their own chunk.
func SplitTOMLSections(doc string) []string {
	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(doc, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "[") && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// ExtractSection extracts a specific section from parsed TOML data
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt64 safely extracts an int64 value from a map
func ExtractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractBool safely extracts a bool value from a map
func ExtractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}

// ExtractString safely extracts a string value from a map
func ExtractString(data map[string]any, key string) (string, bool) {
	if val, ok := data[key].(string); ok {
		return val, true
	}
	return "", false
}
