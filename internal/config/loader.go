package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is a keyset file format.
type Format int

const (
	// FormatTOML is read with go-toml.
	FormatTOML Format = iota + 1
	// FormatYAML is read with yaml.v3.
	FormatYAML
	// FormatJSON is read with gjson.
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and decodes the keyset at path. Environment overrides are not
// applied; see LoadWithEnv.
func Load(path string) (*Keyset, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(data, format, path)
}

// LoadWithEnv loads the keyset at path and applies KEYCHORD_ overrides from
// the process environment.
func LoadWithEnv(path string) (*Keyset, error) {
	ks, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := ks.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return ks, nil
}

// Parse decodes keyset data. source names the data in errors.
func Parse(data []byte, format Format, source string) (*Keyset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		ks := Default()
		ks.Source = source
		return ks, nil
	}

	var (
		raw map[string]any
		err error
	)
	switch format {
	case FormatTOML:
		raw, err = parseTOML(source, data)
	case FormatYAML:
		raw, err = parseYAML(source, data)
	case FormatJSON:
		raw, err = parseJSON(source, data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return decode(source, raw)
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return raw, nil
}

func parseYAML(source string, data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return raw, nil
}

func parseJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "top level must be an object"}
	}
	raw, _ := root.Value().(map[string]any)
	return raw, nil
}
