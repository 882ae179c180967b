package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialization of a rules document
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // bundled format
	FormatYAML
	FormatTOML
)

// FormatInfo contains metadata about a rules file format
type FormatInfo struct {
	Format      Format
	Description string
	Extensions  []string
}

var supportedFormats = map[Format]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON rules document",
		Extensions:  []string{".json"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML rules document",
		Extensions:  []string{".yaml", ".yml"},
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML rules document",
		Extensions:  []string{".toml"},
	},
}

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// DetectFormat picks a format from the file extension
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, validExtension := range info.Extensions {
			if ext == validExtension {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s has extension %q", ErrUnknownFormat, filename, ext)
}

// Decode parses a rules document without compiling it.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), doc)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRules, format, err)
	}
	return doc, nil
}

// Encode serializes a document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// Parse decodes and compiles a rules document.
func Parse(data []byte, format Format) (*Ruleset, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// LoadFile reads a rules file, choosing the decoder by extension.
func LoadFile(filename string) (*Ruleset, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	log.Debugf("Loading %s from %s", format, filename)
	rs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rs, nil
}
