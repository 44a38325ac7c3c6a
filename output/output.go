// Package output provides styled terminal output for the wren CLI.
//
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	verbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	fmt.Println(successStyle.Render("✓ " + msg))
}

// Error prints an error message in red.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Println(errorStyle.Render("✗ " + msg))
}

// Warn prints a warning message in yellow.
// Use this for recoverable problems (missing markers, inconsistent relations).
func Warn(msg string) {
	fmt.Println(warnStyle.Render("⚠ " + msg))
}

// Info prints an informational message in cyan.
// Use this for status updates or explanations.
func Info(msg string) {
	fmt.Println(infoStyle.Render("→ " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("go mod tidy")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("· " + msg))
	}
}

// File-level verbs. Every file the generator touches is reported through one
// of these so a run reads like a ledger of what happened on disk.

// Created reports a newly written file.
func Created(path string) {
	fmt.Println(verbStyle.Render("    created  ") + path)
}

// Updated reports an existing file that was rewritten.
func Updated(path string) {
	fmt.Println(verbStyle.Render("    updated  ") + path)
}

// Injected reports a line spliced into an existing file at a marker.
func Injected(path string) {
	fmt.Println(verbStyle.Render("   injected  ") + path)
}

// Skipped reports a file that was deliberately left alone.
func Skipped(path, reason string) {
	if reason == "" {
		fmt.Println(skipStyle.Render("    skipped  ") + path)
		return
	}
	fmt.Println(skipStyle.Render("    skipped  ") + path + skipStyle.Render("  ("+reason+")"))
}

// Conflict reports a file needing manual resolution.
func Conflict(path string) {
	fmt.Println(warnStyle.Render("   conflict  ") + path)
}
