// Package ui formats user-facing command output.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}

	return f.color.Sprint(text)
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	return f.Sprintf("%s", fmt.Sprint(a...))
}

func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}

	return color.NoColor
}

// Semantic formatters.
var (
	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Success marks completed operations.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Warning marks degraded outcomes.
	Warning = Formatter{color.New(color.FgYellow, color.Bold), "[warn] ", ""}

	// Error marks failures.
	Error = Formatter{color.New(color.FgRed, color.Bold), "[error] ", ""}

	// Highlight formats values such as digests and percentages.
	Highlight = Formatter{color.New(color.FgCyan), "", ""}
)
