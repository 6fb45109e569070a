// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/arcli/internal/color"
)

var _ Indicator = (*LineIndicator)(nil)

// LineIndicator writes one line per update. It is used when stdout is not a terminal.
type LineIndicator struct {
	w  io.Writer
	mu sync.Mutex
}

// NewLineIndicator creates a LineIndicator writing to w.
func NewLineIndicator(w io.Writer) *LineIndicator {
	return &LineIndicator{w: w}
}

// Start implements Indicator.
func (l *LineIndicator) Start(text string) {
	l.printf("%s %s\n", color.Colorize("-", color.Faint), text)
}

// Report implements Indicator.
func (l *LineIndicator) Report(ev Event) {
	switch ev.Type {
	case EventOutput:
		l.printf("%s\n", ev.Message)
	case EventSkipped:
		l.printf("%s %s\n", color.Colorize("~", color.Faint), ev.Message)
	case EventFailed:
		l.printf("%s %s\n", color.Colorize("!", color.Warning), ev.Message)
	default:
		if ev.Message != "" {
			l.printf("%s %s\n", color.Colorize("-", color.Faint), ev.Message)
		}
	}
}

// Succeed implements Indicator.
func (l *LineIndicator) Succeed(text string) {
	l.printf("%s %s\n", color.Colorize("✔", color.Success), text)
}

// Fail implements Indicator.
func (l *LineIndicator) Fail(text string) {
	l.printf("%s %s\n", color.Colorize("✖", color.Error), text)
}

func (l *LineIndicator) printf(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.w, format, a...)
}
