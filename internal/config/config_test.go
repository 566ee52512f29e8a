// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2s-go/asciitosvg"
)

// isolate points the XDG config directories at an empty temporary tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(dir, "system"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		TabWidth: asciitosvg.DefaultTabWidth,
		Font:     asciitosvg.DefaultFont,
		ScaleX:   asciitosvg.DefaultScaleX,
		ScaleY:   asciitosvg.DefaultScaleY,
	}, cfg)
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "a2s", "config.toml"), "font = \"Courier\"\nscale_x = 12\nscale_y = 20\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Courier", cfg.Font)
	assert.Equal(t, 12, cfg.ScaleX)

	t.Setenv("A2S_SCALE_X", "7")
	t.Setenv("A2S_NO_BLUR", "true")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ScaleX)
	assert.Equal(t, 20, cfg.ScaleY)
	assert.True(t, cfg.NoBlur)

	cfg, err = Load("", map[string]interface{}{KeyScaleX: 5, KeyFont: "Mono"})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ScaleX)
	assert.Equal(t, "Mono", cfg.Font)
}

func TestLoadIgnoresUnknownEnv(t *testing.T) {
	isolate(t)
	t.Setenv("A2S_FOO", "bar")
	t.Setenv("A2S_SCALE_Y", "12")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.ScaleY)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	tests := []struct {
		name    string
		file    string
		content string
		want    int
	}{
		{"toml", "a.toml", "tab_width = 4\n", 4},
		{"yaml", "a.yaml", "tab_width: 2\n", 2},
		{"yml", "a.yml", "tab_width: 3\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)
			cfg, err := Load(path, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.TabWidth)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.toml"), nil)
	assert.Error(t, err)

	path := filepath.Join(dir, "a.json")
	writeFile(t, path, "{}")
	_, err = Load(path, nil)
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = Load("", map[string]interface{}{KeyScaleY: 0})
	assert.True(t, errors.Is(err, ErrInvalid))

	path = filepath.Join(dir, "unknown.toml")
	writeFile(t, path, "colour = \"red\"\n")
	_, err = Load(path, nil)
	assert.Error(t, err)
}

func TestWriteTOML(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load("", map[string]interface{}{KeyScaleX: 11, KeyNoBlur: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteTOML(&buf))
	assert.Contains(t, buf.String(), "scale_x = 11")
	assert.Contains(t, buf.String(), "no_blur = true")

	// The output loads back to the same settings.
	path := filepath.Join(dir, "dump.toml")
	writeFile(t, path, buf.String())
	again, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestOptions(t *testing.T) {
	t.Parallel()
	cfg := Config{TabWidth: 0, Font: "X", ScaleX: 3, ScaleY: 4, NoBlur: true, Normalize: true}
	assert.Equal(t, asciitosvg.Options{TabWidth: -1, Font: "X", ScaleX: 3, ScaleY: 4, NoBlur: true, Normalize: true}, cfg.Options())
	cfg.TabWidth = 8
	assert.Equal(t, 8, cfg.Options().TabWidth)
}
