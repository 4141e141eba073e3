// Package printer formats x32ctl terminal output.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Info prints an informational message in the default color.
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow.
func Warning(format string, a ...any) {
	yellow.Printf("! "+format, a...)
}

// Field prints a label/value pair with the label highlighted.
func Field(label string, format string, a ...any) {
	cyan.Printf("%-16s", label)
	fmt.Printf(format+"\n", a...)
}

// Error prints the message in red to stderr and returns a plain error for
// cobra (which stays silent because SilenceErrors is set on the root).
func Error(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	red.Fprintf(os.Stderr, "%s\n", msg)
	return fmt.Errorf("%s", msg)
}
