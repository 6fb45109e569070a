// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) add(l string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, l)
}

func TestLineTeeReader(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedLines   []string
		expectedLast    string
		expectedPartial string
	}{
		{
			name:          "single line with newline",
			input:         "hello world\n",
			expectedLines: []string{"hello world"},
			expectedLast:  "hello world",
		},
		{
			name:            "single line without newline",
			input:           "hello world",
			expectedPartial: "hello world",
		},
		{
			name: "empty string",
		},
		{
			name:          "just newline",
			input:         "\n",
			expectedLines: []string{""},
		},
		{
			name:            "multiple lines with partial tail",
			input:           "one\ntwo\r\nthree",
			expectedLines:   []string{"one", "two"},
			expectedLast:    "two",
			expectedPartial: "three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &lineSink{}
			tr := New(strings.NewReader(tt.input), sink.add)

			data, err := io.ReadAll(tr)
			require.NoError(t, err)

			captured, truncated := tr.Captured()
			assert.Equal(t, tt.input, string(data))
			assert.Equal(t, tt.input, string(captured))
			assert.False(t, truncated)
			assert.Equal(t, tt.expectedLines, sink.lines)
			assert.Equal(t, tt.expectedLast, tr.LastLine(0))
			assert.Equal(t, tt.expectedPartial, tr.PartialLine())
		})
	}
}

func TestLineTeeReader_ByteByByte(t *testing.T) {
	sink := &lineSink{}
	tr := New(iotest.OneByteReader(strings.NewReader("alpha\nbeta\ngamma")), sink.add)

	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	tr.Flush()

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, sink.lines)
	assert.Equal(t, "gamma", tr.LastLine(0))
	assert.Empty(t, tr.PartialLine())
}

func TestLineTeeReader_FlushEmpty(t *testing.T) {
	sink := &lineSink{}
	tr := New(strings.NewReader("done\n"), sink.add)

	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	tr.Flush()
	assert.Equal(t, []string{"done"}, sink.lines)
}

func TestLineTeeReader_LastLineTruncation(t *testing.T) {
	tr := New(strings.NewReader("a very long line of output\n"), nil)

	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	assert.Equal(t, "a very...", tr.LastLine(9))
	assert.Equal(t, "a very long line of output", tr.LastLine(100))
}

func TestLineTeeReader_CaptureLimit(t *testing.T) {
	tr := NewWithLimit(strings.NewReader("0123456789\n"), nil, 4)

	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	captured, truncated := tr.Captured()
	assert.Equal(t, "0123", string(captured))
	assert.True(t, truncated)
	assert.Equal(t, "0123456789", tr.LastLine(0))
}

func TestLineTeeReader_Reset(t *testing.T) {
	tr := New(strings.NewReader("x\ny"), nil)

	_, err := io.ReadAll(tr)
	require.NoError(t, err)

	tr.Reset()

	captured, truncated := tr.Captured()
	assert.Empty(t, captured)
	assert.False(t, truncated)
	assert.Empty(t, tr.LastLine(0))
	assert.Empty(t, tr.PartialLine())
}
