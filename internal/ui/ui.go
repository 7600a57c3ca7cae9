// Package ui holds the terminal styling shared by every adminctl command.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
	info    = color.New(color.FgCyan)
	bold    = color.New(color.Bold)
)

// Success prints a green line prefixed with a checkmark.
func Success(w io.Writer, format string, args ...interface{}) {
	success.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warn prints a yellow line prefixed with a warning sign.
func Warn(w io.Writer, format string, args ...interface{}) {
	warning.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Fail prints a red line prefixed with a cross.
func Fail(w io.Writer, format string, args ...interface{}) {
	failure.Fprintf(w, "✗ "+format+"\n", args...)
}

// Info prints a cyan line.
func Info(w io.Writer, format string, args ...interface{}) {
	info.Fprintf(w, format+"\n", args...)
}

// Plain prints an unstyled line.
func Plain(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Banner prints a title between two heavy rules.
func Banner(w io.Writer, title string) {
	Rule(w, "=")
	bold.Fprintln(w, title)
	Rule(w, "=")
}

// Rule prints a 60 column separator.
func Rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, 60))
}

// Status renders a colored status word for tables.
func Status(up bool, word string) string {
	if up {
		return color.GreenString("✓ " + word)
	}
	return color.RedString("✗ " + word)
}

// Pending renders a yellow status word for tables.
func Pending(word string) string {
	return color.YellowString("⚠ " + word)
}
