// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// Package logging builds the console logger of the a2s command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Level maps a -v count to a log level.
func Level(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New returns a human readable logger writing to w.
func New(w io.Writer, verbosity int) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	l := zerolog.New(console).Level(Level(verbosity)).With().Timestamp().Logger()
	// Add caller information for debug and trace levels.
	if verbosity >= 2 {
		l = l.With().Caller().Logger()
	}
	return l
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
