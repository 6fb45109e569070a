// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("nil logger falls back to default", func(t *testing.T) {
		ctx := New(context.Background(), nil)
		assert.Same(t, DefaultLogger, Logger(ctx))
	})

	t.Run("custom logger is returned", func(t *testing.T) {
		custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := New(context.Background(), custom)
		assert.Same(t, custom, Logger(ctx))
	})
}

func TestLogger_NoValue(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))
}

func TestNewForTUI(t *testing.T) {
	buf := &bytes.Buffer{}
	old := LevelVar.Level()
	LevelVar.Set(slog.LevelInfo)
	t.Cleanup(func() { LevelVar.Set(old) })

	ctx := NewForTUI(context.Background(), buf)
	Info(ctx, "buffered", "key", "value")

	assert.Contains(t, buf.String(), "buffered")
	assert.Contains(t, buf.String(), "value")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" Warn ", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelEnvName(t *testing.T) {
	name := LevelEnvName()
	require.NotEmpty(t, name)
	assert.Regexp(t, `^[A-Z0-9_.]+_LOG_LEVEL$`, name)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(FormatEnvName(), "")
	assert.Same(t, DefaultLogger, FromEnv())

	t.Setenv(FormatEnvName(), " JSON ")
	assert.Same(t, JSONLogger, FromEnv())
}

func TestNewForTUI_JSON(t *testing.T) {
	t.Setenv(FormatEnvName(), "json")

	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)
	Warn(ctx, "buffered", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "buffered", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestFormatEnvName(t *testing.T) {
	assert.Regexp(t, `^[A-Z0-9_.]+_LOG_FORMAT$`, FormatEnvName())
}
