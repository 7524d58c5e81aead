package config

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNoToolTable is returned by DecodePyproject when pyproject.toml has no [tool.gopylint] table.
var ErrNoToolTable = errors.New("no [tool.gopylint] table")

// DecodeTOML decodes TOML data on top of cfg. Keys absent from data keep
// their current values. It returns the dotted names of keys that were not
// recognised.
func DecodeTOML(data []byte, cfg *Config) ([]string, error) {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return undecodedKeys(meta), nil
}

// DecodePyproject decodes the [tool.gopylint] table of a pyproject.toml on top of cfg.
func DecodePyproject(data []byte, cfg *Config) ([]string, error) {
	var doc struct {
		Tool map[string]toml.Primitive `toml:"tool"`
	}

	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("decode pyproject: %w", err)
	}

	table, ok := doc.Tool["gopylint"]
	if !ok {
		return nil, ErrNoToolTable
	}

	if err := meta.PrimitiveDecode(table, cfg); err != nil {
		return nil, fmt.Errorf("decode [tool.gopylint]: %w", err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		if len(key) > 2 && key[0] == "tool" && key[1] == "gopylint" {
			unknown = append(unknown, key[2:].String())
		}
	}
	sort.Strings(unknown)
	return unknown, nil
}

// DecodeYAML decodes YAML data on top of cfg.
func DecodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ToTOML serializes the persisted part of the configuration.
func (c *Config) ToTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAML serializes the persisted part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func undecodedKeys(meta toml.MetaData) []string {
	keys := meta.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, strings.Join(key, "."))
	}
	sort.Strings(out)
	return out
}
