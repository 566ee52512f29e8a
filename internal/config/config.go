// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// Package config loads the rendering settings of the a2s command. Settings are layered, each layer
// overriding the previous one: built-in defaults, the config file, A2S_ environment variables and
// finally command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/a2s-go/asciitosvg"
	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Keys of the settings, shared by every layer.
const (
	KeyTabWidth  = "tab_width"
	KeyNoBlur    = "no_blur"
	KeyFont      = "font"
	KeyScaleX    = "scale_x"
	KeyScaleY    = "scale_y"
	KeyNormalize = "normalize"
)

// EnvPrefix is the prefix of the environment variables overriding settings, as in A2S_SCALE_X.
const EnvPrefix = "A2S_"

// defaultPath is the config file looked up in the XDG config directories.
const defaultPath = "a2s/config.toml"

// ErrInvalid is returned when the loaded settings cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the rendering settings.
type Config struct {
	TabWidth  int    `koanf:"tab_width" toml:"tab_width"`
	NoBlur    bool   `koanf:"no_blur" toml:"no_blur"`
	Font      string `koanf:"font" toml:"font"`
	ScaleX    int    `koanf:"scale_x" toml:"scale_x"`
	ScaleY    int    `koanf:"scale_y" toml:"scale_y"`
	Normalize bool   `koanf:"normalize" toml:"normalize"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		KeyTabWidth:  asciitosvg.DefaultTabWidth,
		KeyNoBlur:    false,
		KeyFont:      asciitosvg.DefaultFont,
		KeyScaleX:    asciitosvg.DefaultScaleX,
		KeyScaleY:    asciitosvg.DefaultScaleY,
		KeyNormalize: false,
	}
}

// Load merges every layer. path names the config file; when empty the XDG config directories are
// searched for a2s/config.toml, which may be absent. overrides holds the settings given on the
// command line.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if p, err := xdg.SearchConfigFile(defaultPath); err == nil {
			path = p
		}
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Environment. Variables that do not name a setting are skipped.
	known := Defaults()
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if len(overrides) != 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot produce a drawing.
func (c *Config) Validate() error {
	if c.ScaleX <= 0 || c.ScaleY <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %d,%d", ErrInvalid, c.ScaleX, c.ScaleY)
	}
	return nil
}

// Options converts the settings for asciitosvg.Convert.
func (c *Config) Options() asciitosvg.Options {
	tabWidth := c.TabWidth
	if tabWidth == 0 {
		// Zero means "leave tabs alone" here, while Convert reads it as "use the default".
		tabWidth = -1
	}
	return asciitosvg.Options{
		TabWidth:  tabWidth,
		NoBlur:    c.NoBlur,
		Font:      c.Font,
		ScaleX:    c.ScaleX,
		ScaleY:    c.ScaleY,
		Normalize: c.Normalize,
	}
}

// WriteTOML writes the settings in the config file format.
func (c *Config) WriteTOML(w io.Writer) error {
	return gotoml.NewEncoder(w).Encode(c)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, fmt.Errorf("%w: unsupported config file format %q", ErrInvalid, path)
}
