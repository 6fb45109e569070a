// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/arcli/internal/progress"
)

// Status is the state of the job shown by the model.
type Status int

const (
	StatusRunning Status = iota
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Styles contains the styling for the spinner line.
type Styles struct {
	Spinner lipgloss.Style
	Title   lipgloss.Style
	Step    lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
}

// NewStyles creates the default styling.
func NewStyles() *Styles {
	return &Styles{
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Title:   lipgloss.NewStyle().Bold(true),
		Step:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Model is the bubbletea model behind Spinner.
type Model struct {
	spinner spinner.Model
	title   string
	step    string
	status  Status
	final   string
	styles  *Styles
}

// NewModel creates a running model with the given title.
func NewModel(title string) *Model {
	styles := NewStyles()

	return &Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		title:   title,
		styles:  styles,
	}
}

// Status returns the current job status.
func (m *Model) Status() Status {
	return m.status
}

type (
	titleMsg  struct{ text string }
	eventMsg  struct{ ev progress.Event }
	finishMsg struct {
		ok   bool
		text string
	}
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case titleMsg:
		m.title = msg.text
		m.step = ""

		return m, nil

	case eventMsg:
		return m, m.handleEvent(msg.ev)

	case finishMsg:
		m.final = msg.text
		m.status = StatusFailed

		if msg.ok {
			m.status = StatusSuccess
		}

		return m, tea.Quit

	case spinner.TickMsg:
		if m.status != StatusRunning {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) handleEvent(ev progress.Event) tea.Cmd {
	switch ev.Type {
	case progress.EventStarted:
		m.step = ev.Step
	case progress.EventProgress:
		if ev.Message != "" {
			m.step = ev.Message
		}
	case progress.EventOutput:
		line := strings.TrimRight(ev.Message, "\r\n")
		if line == "" {
			return nil
		}

		return tea.Println(line)
	case progress.EventSkipped, progress.EventFailed:
		if ev.Message == "" {
			return nil
		}

		return tea.Println(m.styles.Step.Render(ev.Message))
	}

	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.status {
	case StatusSuccess:
		return m.styles.Success.Render("✔") + " " + m.final + "\n"
	case StatusFailed:
		return m.styles.Failed.Render("✖") + " " + m.final + "\n"
	}

	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.styles.Title.Render(m.title))

	if m.step != "" {
		b.WriteString(" ")
		b.WriteString(m.styles.Step.Render(m.step))
	}

	b.WriteString("\n")

	return b.String()
}
