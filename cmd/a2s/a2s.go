// Copyright 2012 - 2018 The ASCIIToSVG Contributors
// All rights reserved.

// a2s converts ASCII art diagrams to SVG.
package main

import (
	"fmt"
	"os"

	"github.com/a2s-go/asciitosvg/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "a2s: %s\n", err)
		os.Exit(1)
	}
}
