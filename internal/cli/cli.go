// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// Package cli implements the a2s command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/a2s-go/asciitosvg"
	"github.com/a2s-go/asciitosvg/internal/config"
	"github.com/a2s-go/asciitosvg/internal/logging"
)

const logo = `.-------------------------.
|                         |
| .---.-. .-----. .-----. |
| | .-. | +-->  | |  <--| |
| | '-' | |  <--| +-->  | |
| '---'-' '-----' '-----' |
|  ascii     2      svg   |
|                         |
'-------------------------'
`

// ErrTerminalInput is returned when the diagram would be read from an interactive terminal.
var ErrTerminalInput = errors.New("refusing to read a diagram from a terminal; use -i")

type flags struct {
	input     string
	output    string
	config    string
	noBlur    bool
	font      string
	scale     string
	scaleX    int
	scaleY    int
	tabWidth  int
	normalize bool
	dump      bool
	verbosity int
}

// NewRootCmd returns the a2s command.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "a2s",
		Short: "Convert ASCII art diagrams to SVG",
		Long: logo + `
a2s reads a diagram drawn with ASCII characters and writes it as an SVG
document. Boxes, lines, arrows and text are recognized; tags such as
[name]: {"fill":"#88d"} style the shapes they are attached to.

Settings are read from $XDG_CONFIG_HOME/a2s/config.toml and A2S_* environment
variables, then overridden by flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "-", "Path to input text file. If set to \"-\" (hyphen), stdin is used.")
	fl.StringVarP(&f.output, "output", "o", "-", "Path to output SVG file. If set to \"-\" (hyphen), stdout is used.")
	fl.StringVarP(&f.config, "config", "c", "", "Path to a TOML or YAML config file.")
	fl.BoolVarP(&f.noBlur, "no-blur", "b", false, "Disable drop-shadow blur.")
	fl.StringVarP(&f.font, "font", "f", asciitosvg.DefaultFont, "Font family to use.")
	fl.StringVarP(&f.scale, "scale", "s", "", "Grid scale in pixels, as X,Y.")
	fl.IntVarP(&f.scaleX, "scale-x", "x", asciitosvg.DefaultScaleX, "X grid scale in pixels.")
	fl.IntVarP(&f.scaleY, "scale-y", "y", asciitosvg.DefaultScaleY, "Y grid scale in pixels.")
	fl.IntVarP(&f.tabWidth, "tab-width", "t", asciitosvg.DefaultTabWidth, "Number of spaces replacing each tab; 0 keeps tabs.")
	fl.BoolVar(&f.normalize, "normalize", false, "Compose the input to Unicode NFC before parsing.")
	fl.BoolVar(&f.dump, "print-config", false, "Print the effective settings as TOML and exit.")
	fl.CountVarP(&f.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	log := logging.New(cmd.ErrOrStderr(), f.verbosity)

	overrides, err := f.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.config, overrides)
	if err != nil {
		return err
	}
	log.Debug().Interface("config", cfg).Msg("configuration loaded")
	if f.dump {
		return cfg.WriteTOML(cmd.OutOrStdout())
	}

	input, err := readInput(cmd.InOrStdin(), f.input, cmd.Flags().Changed("input"))
	if err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Logger = &log
	svg, err := asciitosvg.Convert(input, opts)
	if err != nil {
		return err
	}

	if f.output == "-" {
		_, err = io.WriteString(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(f.output, []byte(svg), 0o666); err != nil {
		return err
	}
	log.Info().Str("path", f.output).Int("bytes", len(svg)).Msg("diagram written")
	return nil
}

// overrides returns the settings explicitly given as flags.
func (f *flags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	fl := cmd.Flags()
	out := map[string]interface{}{}
	if fl.Changed("no-blur") {
		out[config.KeyNoBlur] = f.noBlur
	}
	if fl.Changed("font") {
		out[config.KeyFont] = f.font
	}
	if fl.Changed("scale-x") {
		out[config.KeyScaleX] = f.scaleX
	}
	if fl.Changed("scale-y") {
		out[config.KeyScaleY] = f.scaleY
	}
	if fl.Changed("scale") {
		x, y, err := parseScale(f.scale)
		if err != nil {
			return nil, err
		}
		out[config.KeyScaleX] = x
		out[config.KeyScaleY] = y
	}
	if fl.Changed("tab-width") {
		out[config.KeyTabWidth] = f.tabWidth
	}
	if fl.Changed("normalize") {
		out[config.KeyNormalize] = f.normalize
	}
	return out, nil
}

// parseScale parses "X,Y".
func parseScale(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid scale %q: want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid scale %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid scale %q: %w", s, err)
	}
	return x, y, nil
}

// readInput reads the diagram from path, or from stdin when path is "-". An interactive stdin is
// only read when explicitly asked for.
func readInput(stdin io.Reader, path string, explicit bool) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(path)
	}
	if f, ok := stdin.(*os.File); ok && !explicit {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return nil, ErrTerminalInput
		}
	}
	return io.ReadAll(stdin)
}
