// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		expected  string
	}{
		{name: "EventStarted", eventType: EventStarted, expected: "started"},
		{name: "EventProgress", eventType: EventProgress, expected: "progress"},
		{name: "EventOutput", eventType: EventOutput, expected: "output"},
		{name: "EventCompleted", eventType: EventCompleted, expected: "completed"},
		{name: "EventFailed", eventType: EventFailed, expected: "failed"},
		{name: "EventSkipped", eventType: EventSkipped, expected: "skipped"},
		{name: "Unknown event type", eventType: EventType(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.String())
		})
	}
}

func TestOrNull(t *testing.T) {
	assert.Equal(t, NullIndicator{}, OrNull(nil))

	rec := &Recorder{}
	assert.Same(t, rec, OrNull(rec))
}

func TestLineIndicator(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer

	ind := NewLineIndicator(&buf)
	ind.Start("Scaffolding")
	ind.Report(NewEvent("install", EventOutput, "added 3 packages"))
	ind.Report(NewEvent("install", EventProgress, ""))
	ind.Report(NewEvent("deps", EventSkipped, "deps skipped"))
	ind.Succeed("Done")
	ind.Fail("Nope")

	out := buf.String()
	assert.Contains(t, out, "Scaffolding\n")
	assert.Contains(t, out, "added 3 packages\n")
	assert.Contains(t, out, "deps skipped\n")
	assert.Contains(t, out, "Done\n")
	assert.Contains(t, out, "Nope\n")
	assert.Equal(t, 5, bytes.Count(buf.Bytes(), []byte("\n")), "empty progress messages are not printed")
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}

	_, ok := rec.Last()
	assert.False(t, ok)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			rec.Report(NewEvent("s", EventOutput, "line"))
		}()
	}

	wg.Wait()

	rec.Succeed("ok")

	require.Len(t, rec.Calls(), 11)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, Call{Method: "Succeed", Text: "ok"}, last)
	assert.Equal(t, "Report", rec.Methods()[0])
}
