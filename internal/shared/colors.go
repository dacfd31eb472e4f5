// Package shared provides shared utilities for all cc-jslint commands.
package shared

import (
	"github.com/charmbracelet/lipgloss"
)

// Standard color definitions (Catppuccin Mocha).
var (
	Red    = lipgloss.Color("#f38ba8")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Blue   = lipgloss.Color("#89dceb")
	Cyan   = lipgloss.Color("#94e2d5")
	Mauve  = lipgloss.Color("#cba6f7")
)

// Styles for interactive CLI output.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow)
	InfoStyle    = lipgloss.NewStyle().Foreground(Blue)
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Mauve)
)

// RawErrorStyle is for hook output. Hook stdout/stderr is consumed by Claude
// Code over a pipe, never a terminal, so it carries no color and renders text
// byte-identical to the input.
var RawErrorStyle = lipgloss.NewStyle()
