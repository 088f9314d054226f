// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Status symbols for text output.
const (
	SymbolPass = "✓"
	SymbolFail = "✗"
	SymbolWarn = "⚠"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteStatus writes "<symbol> <message>" with the symbol in colorAttr.
// Color is dropped automatically when w is not a terminal or NO_COLOR is set.
func WriteStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	Writef(w, "%s %s\n", c.Sprint(symbol), message)
}
