package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Color scheme for pyfind
var (
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow)
	Info    = color.New(color.FgCyan)

	Highlight = color.New(color.FgHiCyan, color.Bold)
	Muted     = color.New(color.Faint)
	Bold      = color.New(color.Bold)

	// Status indicators
	CheckMark = color.GreenString("✓")
	CrossMark = color.RedString("✗")
	Arrow     = color.CyanString("→")
	Bullet    = color.HiBlackString("•")

	// Candidate source colors
	SourcePath     = color.New(color.FgBlue)
	SourceShim     = color.New(color.FgYellow)
	SourceLauncher = color.New(color.FgMagenta)
)

const separator = "────────────────────────────────────────"

// InitColors applies the resolved color setting globally.
// false forces colors on, even when stdout is not a terminal.
func InitColors(noColor bool) {
	if noColor {
		DisableColors()
	} else {
		EnableColors()
	}
}

// FprintSuccess prints a success line to w
func FprintSuccess(w io.Writer, format string, args ...any) {
	Success.Fprintf(w, "%s %s\n", CheckMark, fmt.Sprintf(format, args...))
}

// FprintFailure prints a failed check to w without the "Error:" prefix
func FprintFailure(w io.Writer, format string, args ...any) {
	Error.Fprintf(w, "%s %s\n", CrossMark, fmt.Sprintf(format, args...))
}

// FprintWarning prints a warning line to w
func FprintWarning(w io.Writer, format string, args ...any) {
	Warning.Fprintf(w, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// FprintInfo prints an info line to w
func FprintInfo(w io.Writer, format string, args ...any) {
	Info.Fprintf(w, "%s %s\n", Arrow, fmt.Sprintf(format, args...))
}


// FprintKeyValue prints a key-value pair with color
func FprintKeyValue(w io.Writer, key, value string) {
	Bold.Fprintf(w, "%s: ", key)
	fmt.Fprintln(w, value)
}

// FprintHeader prints a section header
func FprintHeader(w io.Writer, text string) {
	fmt.Fprintln(w)
	Bold.Fprintln(w, text)
	Muted.Fprintln(w, separator)
}

// FprintSubheader prints a subsection header
func FprintSubheader(w io.Writer, text string) {
	fmt.Fprintln(w)
	Highlight.Fprintln(w, text)
}

// FprintList prints a bulleted list
func FprintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", Bullet, item)
	}
}

// ColorizeSource returns a colored candidate source name
func ColorizeSource(source string) string {
	switch source {
	case "path":
		return SourcePath.Sprint(source)
	case "shim":
		return SourceShim.Sprint(source)
	case "py launcher":
		return SourceLauncher.Sprint(source)
	default:
		return source
	}
}

// DisableColors disables all color output
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output
func EnableColors() {
	color.NoColor = false
}

// AreColorsEnabled returns whether colors are currently enabled
func AreColorsEnabled() bool {
	return !color.NoColor
}
