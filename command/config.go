package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds parser settings and option defaults loaded from a file. Unset
// fields leave the parser unchanged.
//
//	# parser.toml
//	max_matched_items = 0
//	debug = false
//	[defaults]
//	"--threads" = ["8"]
type Config struct {
	Offset            *int                `json:"offset,omitempty" toml:"offset" yaml:"offset,omitempty"`
	MaxMatchedItems   *int                `json:"max_matched_items,omitempty" toml:"max_matched_items" yaml:"max_matched_items,omitempty"`
	AtSyntax          *bool               `json:"at_syntax,omitempty" toml:"at_syntax" yaml:"at_syntax,omitempty"`
	Debug             *bool               `json:"debug,omitempty" toml:"debug" yaml:"debug,omitempty"`
	MaxExpansionDepth *int                `json:"max_expansion_depth,omitempty" toml:"max_expansion_depth" yaml:"max_expansion_depth,omitempty"`
	Defaults          map[string][]string `json:"defaults,omitempty" toml:"defaults" yaml:"defaults,omitempty"`
}

// LoadConfig reads a .json, .toml, .yaml or .yml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := DecodeConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes data in the given format ("json", "toml", "yaml"; a
// leading dot is accepted).
func DecodeConfig(data []byte, format string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}
	return &cfg, nil
}

// Configure applies c. Unlike the other setup methods it returns a
// *ConfigError instead of panicking, since c usually comes from a file; on
// error the parser is left unchanged.
func (p *Parser) Configure(c *Config) error {
	if c == nil {
		return nil
	}
	if p.isSealed() {
		return &ConfigError{Message: "cannot configure a parser after parsing has started"}
	}

	// validate before touching the parser
	for name, tokens := range c.Defaults {
		it := p.index[name]
		if it == nil {
			return &ConfigError{Option: name, Message: "default given for an undeclared option"}
		}
		if _, convErr := it.typ.Convert(tokens...); convErr != nil {
			return &ConfigError{Option: name, Message: "illegal default: " + convErr.Error()}
		}
	}
	if c.Offset != nil && *c.Offset < 0 {
		return &ConfigError{Message: fmt.Sprintf("negative offset %d", *c.Offset)}
	}
	if c.MaxExpansionDepth != nil && *c.MaxExpansionDepth < 1 {
		return &ConfigError{Message: fmt.Sprintf("expansion depth %d must be at least 1", *c.MaxExpansionDepth)}
	}

	if c.Offset != nil {
		p.Offset(*c.Offset)
	}
	if c.MaxMatchedItems != nil {
		p.MaxMatchedItems(*c.MaxMatchedItems)
	}
	if c.AtSyntax != nil {
		p.AtSyntax(*c.AtSyntax)
	}
	if c.Debug != nil {
		p.Debug(*c.Debug)
	}
	if c.MaxExpansionDepth != nil {
		p.MaxExpansionDepth(*c.MaxExpansionDepth)
	}
	for name, tokens := range c.Defaults {
		(&ItemBuilder{item: p.index[name]}).DefaultTokens(tokens...)
	}
	return nil
}
