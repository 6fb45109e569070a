// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/arcli/internal/color"
)

var (
	// ErrMarshalAttribute is returned when the record attributes cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when the rendered record cannot be written.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log lines.
const TimeFormat = "[15:04:05.000]"

// scratch is shared by a handler and every handler derived from it with WithAttrs/WithGroup.
// The inner JSON handler writes into buf, which is then decoded back into a map.
type scratch struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// PrettyHandler renders records as `[time] LEVEL: message {attrs}`.
// Attribute grouping is delegated to an inner slog.JSONHandler.
type PrettyHandler struct {
	inner            slog.Handler
	replace          func([]string, slog.Attr) slog.Attr
	scratch          *scratch
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Option configures a PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets where rendered records are written.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables colour regardless of the terminal.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour when the color package reports it is enabled.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs renders `{}` for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a PrettyHandler. A nil handlerOptions is treated as the zero value.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	s := &scratch{}
	h := &PrettyHandler{
		scratch: s,
		inner: slog.NewJSONHandler(&s.buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		replace: handlerOptions.ReplaceAttr,
		writer:  io.Discard,
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

func (h *PrettyHandler) clone(inner slog.Handler) *PrettyHandler {
	c := *h
	c.inner = inner

	return &c
}

// Enabled reports whether the inner handler accepts level.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.clone(h.inner.WithAttrs(attrs))
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return h.clone(h.inner.WithGroup(name))
}

// Handle renders r and writes it to the destination writer.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	var out strings.Builder

	if ts, ok := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ok {
		out.WriteString(h.paint(ts, color.Faint))
		out.WriteByte(' ')
	}

	if lvl, ok := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); ok {
		out.WriteString(h.paint(lvl+":", levelRole(r.Level)))
		out.WriteByte(' ')
	}

	if msg, ok := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); ok {
		out.WriteString(h.paint(msg, color.Highlight))
		out.WriteByte(' ')
	}

	attrs, err := h.attrs(ctx, r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = 0
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.Write(b)
	}

	line := strings.TrimRight(out.String(), " ") + "\n"

	if _, err := io.WriteString(h.writer, line); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies the user's ReplaceAttr to one of the built-in keys.
// It returns false when the attribute was removed.
func (h *PrettyHandler) builtin(key string, v slog.Value) (string, bool) {
	a := slog.Attr{Key: key, Value: v}
	if h.replace != nil {
		a = h.replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return "", false
	}

	return a.Value.String(), true
}

func (h *PrettyHandler) attrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.scratch.mu.Lock()
	defer func() {
		h.scratch.buf.Reset()
		h.scratch.mu.Unlock()
	}()

	if err := h.inner.Handle(ctx, r); err != nil {
		return nil, errors.Join(ErrMarshalAttribute, err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.scratch.buf.Bytes(), &attrs); err != nil {
		return nil, errors.Join(ErrMarshalAttribute, err)
	}

	return attrs, nil
}

func (h *PrettyHandler) paint(s string, role color.Role) string {
	if !h.colour {
		return s
	}

	return color.Style(role).Render(s)
}

func levelRole(l slog.Level) color.Role {
	switch {
	case l < slog.LevelInfo:
		return color.Accent
	case l < slog.LevelWarn:
		return color.Info
	case l < slog.LevelError:
		return color.Warning
	default:
		return color.Error
	}
}

// suppressDefaults stops the inner handler emitting time, level and message,
// which the PrettyHandler renders itself.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
