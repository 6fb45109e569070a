// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
)

// Role names the purpose of a piece of text rather than its colour.
type Role int

const (
	// Plain text, rendered without styling.
	Plain Role = iota
	// Faint is used for timestamps and secondary detail.
	Faint
	// Info is used for informational labels.
	Info
	// Success marks completed work.
	Success
	// Warning marks recoverable problems.
	Warning
	// Error marks failures.
	Error
	// Highlight is used for command names and emphasised values.
	Highlight
	// Accent is used for the spinner and debug output.
	Accent
)

var (
	enabled  bool
	renderer *lipgloss.Renderer
	styles   map[Role]lipgloss.Style
)

func init() {
	enabled = isColorCapable()
	renderer = lipgloss.NewRenderer(os.Stdout)

	if enabled && os.Getenv(ForceColor) != "" {
		renderer.SetColorProfile(termenv.ANSI256)
	}

	styles = map[Role]lipgloss.Style{
		Plain:     renderer.NewStyle(),
		Faint:     renderer.NewStyle().Foreground(lipgloss.Color("8")),
		Info:      renderer.NewStyle().Foreground(lipgloss.Color("6")),
		Success:   renderer.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   renderer.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     renderer.NewStyle().Foreground(lipgloss.Color("9")),
		Highlight: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Accent:    renderer.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

// Colorize renders str in the style for role. It returns str unchanged when colour is disabled.
func Colorize(str string, role Role) string {
	if !enabled {
		return str
	}

	st, ok := styles[role]
	if !ok {
		return str
	}

	return st.Render(str)
}

// Style returns the lipgloss style for role, for use by TUI components.
// When colour is disabled the returned style carries no colour.
func Style(role Role) lipgloss.Style {
	if !enabled {
		return renderer.NewStyle()
	}

	return styles[role]
}

// Enabled reports whether color output is enabled. It is computed once at package init.
func Enabled() bool {
	return enabled
}

func isColorCapable() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
