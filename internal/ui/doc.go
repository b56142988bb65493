// Package ui holds the terminal styles used by the foodcodex CLI.
//
// [Palette] wraps a handful of [lipgloss] styles (title, ok, error, warning, help).
// Styles degrade to plain text when output is not a terminal, so piped and captured output stays readable.
package ui
