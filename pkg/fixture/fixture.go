// Package fixture reads page details and vault items from files, so fill
// scripts can be generated without a browser extension in front of the
// engine. Documents may be JSON, JSON with comments (.jsonc), or YAML.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/autofill/pkg/autofill"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions other than .json,
// .jsonc, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Decode unmarshals data into v. JSON input may contain comments and
// trailing commas.
func Decode(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
			return fmt.Errorf("parsing json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return nil
}

func readFile(path string, v interface{}) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := Decode(data, format, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ParsePageDetails decodes one frame's page details.
func ParsePageDetails(data []byte, format Format) (*autofill.PageDetails, error) {
	var page autofill.PageDetails
	if err := Decode(data, format, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// LoadPageDetails reads page details from a file. A document holding a list
// yields one PageDetails per frame.
func LoadPageDetails(path string) ([]*autofill.PageDetails, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var frames []*autofill.PageDetails
	if isList(data, format) {
		if err := Decode(data, format, &frames); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return frames, nil
	}

	page, err := ParsePageDetails(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []*autofill.PageDetails{page}, nil
}

// isList reports whether the document's top-level value is a sequence.
func isList(data []byte, format Format) bool {
	if format == FormatJSON {
		trimmed := strings.TrimSpace(string(jsonc.ToJSON(data)))
		return strings.HasPrefix(trimmed, "[")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil || len(node.Content) == 0 {
		return false
	}
	return node.Content[0].Kind == yaml.SequenceNode
}

// LoadCipher reads a vault item from a file.
func LoadCipher(path string) (*autofill.Cipher, error) {
	var doc CipherDocument
	if err := readFile(path, &doc); err != nil {
		return nil, err
	}
	cipher, err := doc.Cipher()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cipher, nil
}

// ParseCipher decodes a vault item document.
func ParseCipher(data []byte, format Format) (*autofill.Cipher, error) {
	var doc CipherDocument
	if err := Decode(data, format, &doc); err != nil {
		return nil, err
	}
	return doc.Cipher()
}
