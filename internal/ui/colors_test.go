package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestInitColors(t *testing.T) {
	old := color.NoColor
	t.Cleanup(func() { color.NoColor = old })

	color.NoColor = false
	InitColors(true)
	assert.False(t, AreColorsEnabled())

	// colors forced on when output is not a terminal
	InitColors(false)
	assert.True(t, AreColorsEnabled())
}

func TestFprintFunctions(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := []struct {
		name  string
		print func(*bytes.Buffer)
		want  string
	}{
		{"success", func(b *bytes.Buffer) { FprintSuccess(b, "found %s", "python3") }, "found python3"},
		{"failure", func(b *bytes.Buffer) { FprintFailure(b, "cache: %s", "locked") }, "cache: locked"},
		{"warning", func(b *bytes.Buffer) { FprintWarning(b, "shim %d", 1) }, "Warning: shim 1"},
		{"info", func(b *bytes.Buffer) { FprintInfo(b, "searching") }, "searching"},
		{"key value", func(b *bytes.Buffer) { FprintKeyValue(b, "Version", "3.12.1") }, "Version: 3.12.1"},
		{"header", func(b *bytes.Buffer) { FprintHeader(b, "Discovery") }, "Discovery"},
		{"subheader", func(b *bytes.Buffer) { FprintSubheader(b, "Launcher") }, "Launcher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestFprintList(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	FprintList(&buf, []string{"/usr/bin", "/usr/local/bin"})
	assert.Contains(t, buf.String(), "/usr/bin")
	assert.Contains(t, buf.String(), "/usr/local/bin")
}

func TestColorizeSource(t *testing.T) {
	DisableColors()
	defer EnableColors()

	for _, source := range []string{"path", "shim", "py launcher", "other"} {
		assert.Equal(t, source, ColorizeSource(source))
	}
}
