// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"golang.org/x/term"
)

var _ progress.Indicator = (*Spinner)(nil)

// Spinner is a progress.Indicator backed by a bubbletea program.
// Start launches the program, Succeed and Fail stop it and wait for the final frame.
type Spinner struct {
	out     io.Writer
	opts    []tea.ProgramOption
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a Spinner rendering to out.
// Signals are left to the caller, the program never reads stdin.
func NewSpinner(out io.Writer, opts ...tea.ProgramOption) *Spinner {
	return &Spinner{
		out: out,
		opts: slices.Concat([]tea.ProgramOption{
			tea.WithOutput(out),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		}, opts),
	}
}

// Start implements progress.Indicator. Calling Start on a running spinner changes its title.
func (s *Spinner) Start(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(titleMsg{text: text})
		return
	}

	p := tea.NewProgram(NewModel(text), s.opts...)
	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = p.Run()
	}()

	s.program = p
	s.done = done
}

// Report implements progress.Indicator.
func (s *Spinner) Report(ev progress.Event) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()

	if p == nil {
		if ev.Type == progress.EventOutput {
			_, _ = fmt.Fprintln(s.out, ev.Message)
		}

		return
	}

	p.Send(eventMsg{ev: ev})
}

// Succeed implements progress.Indicator.
func (s *Spinner) Succeed(text string) {
	s.finish(true, text)
}

// Fail implements progress.Indicator.
func (s *Spinner) Fail(text string) {
	s.finish(false, text)
}

func (s *Spinner) finish(ok bool, text string) {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if p == nil {
		m := NewModel("")
		m.Update(finishMsg{ok: ok, text: text})
		_, _ = io.WriteString(s.out, m.View())

		return
	}

	p.Send(finishMsg{ok: ok, text: text})
	<-done
}

// ForFile returns a Spinner when f is a terminal and a progress.LineIndicator otherwise.
func ForFile(f *os.File) progress.Indicator {
	if term.IsTerminal(int(f.Fd())) {
		return NewSpinner(f)
	}

	return progress.NewLineIndicator(f)
}

// For returns ForFile(w) when w is a file and a progress.LineIndicator otherwise.
func For(w io.Writer) progress.Indicator {
	if f, ok := w.(*os.File); ok {
		return ForFile(f)
	}

	return progress.NewLineIndicator(w)
}

var _ progress.Pauser = (*Spinner)(nil)

// Pause releases the terminal so a prompt can use it.
func (s *Spinner) Pause() {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()

	if p != nil {
		_ = p.ReleaseTerminal()
	}
}

// Resume takes the terminal back after Pause.
func (s *Spinner) Resume() {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()

	if p != nil {
		_ = p.RestoreTerminal()
	}
}
