package cliutil

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d files, %v", "Status", 42, true)
	assert.Equal(t, "Status: 42 files, true", buf.String())
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(errorWriter{}, "This will fail") })
}

func TestWriteStatus(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	var buf bytes.Buffer
	WriteStatus(&buf, SymbolFail, "api.json", color.FgRed)
	assert.Equal(t, "✗ api.json\n", buf.String())
}
