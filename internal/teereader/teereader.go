// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// DefaultMaxCapture is the capture limit used by New.
const DefaultMaxCapture = 8 * 1024 * 1024 // 8MB

// LineFunc receives one line of output without its trailing newline.
type LineFunc func(line string)

// LineTeeReader wraps an io.Reader, reports complete lines and tracks the last one.
// It is safe for concurrent use.
type LineTeeReader struct {
	reader     io.Reader
	onLine     LineFunc
	maxCapture int
	captured   bytes.Buffer
	truncated  bool
	lastLine   string
	partial    strings.Builder
	mu         sync.RWMutex
}

// New creates a LineTeeReader over r. onLine may be nil.
func New(r io.Reader, onLine LineFunc) *LineTeeReader {
	return NewWithLimit(r, onLine, DefaultMaxCapture)
}

// NewWithLimit is New with an explicit capture limit in bytes. A limit of 0 disables capture.
func NewWithLimit(r io.Reader, onLine LineFunc, maxCapture int) *LineTeeReader {
	return &LineTeeReader{
		reader:     r,
		onLine:     onLine,
		maxCapture: maxCapture,
	}
}

// Read implements io.Reader.
func (lt *LineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lines := lt.process(p[:n])
		lt.emit(lines)
	}

	return n, err //nolint:wrapcheck
}

// Flush reports any trailing partial line as a complete line. Call it once the reader hit EOF.
func (lt *LineTeeReader) Flush() {
	lt.mu.Lock()
	rest := strings.TrimSuffix(lt.partial.String(), "\r")
	lt.partial.Reset()

	if rest != "" {
		lt.lastLine = rest
	}
	lt.mu.Unlock()

	if rest != "" {
		lt.emit([]string{rest})
	}
}

func (lt *LineTeeReader) process(data []byte) []string {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.capture(data)

	lt.partial.Write(data)
	combined := lt.partial.String()

	parts := strings.Split(combined, "\n")
	if len(parts) == 1 {
		return nil
	}

	// The last element is "" when data ended in a newline, otherwise it is the new partial line.
	complete := parts[:len(parts)-1]
	for i, l := range complete {
		complete[i] = strings.TrimSuffix(l, "\r")
	}

	lt.lastLine = complete[len(complete)-1]
	lt.partial.Reset()
	lt.partial.WriteString(parts[len(parts)-1])

	return complete
}

func (lt *LineTeeReader) capture(data []byte) {
	room := lt.maxCapture - lt.captured.Len()
	if room <= 0 {
		lt.truncated = lt.truncated || len(data) > 0 && lt.maxCapture > 0
		return
	}

	if len(data) > room {
		data = data[:room]
		lt.truncated = true
	}

	lt.captured.Write(data)
}

func (lt *LineTeeReader) emit(lines []string) {
	if lt.onLine == nil {
		return
	}

	for _, l := range lines {
		lt.onLine(l)
	}
}

// LastLine returns the last complete line read.
// If maxLength > 0 the line is truncated to that length with a trailing "...".
func (lt *LineTeeReader) LastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	result := lt.lastLine
	if maxLength > 3 && len(result) > maxLength {
		result = result[:maxLength-3] + "..."
	}

	return result
}

// PartialLine returns the data read after the last newline.
func (lt *LineTeeReader) PartialLine() string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return lt.partial.String()
}

// Captured returns a copy of the captured output and whether it was truncated.
func (lt *LineTeeReader) Captured() ([]byte, bool) {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return bytes.Clone(lt.captured.Bytes()), lt.truncated
}

// Reset clears all captured state. The underlying reader is not affected.
func (lt *LineTeeReader) Reset() {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.captured.Reset()
	lt.truncated = false
	lt.lastLine = ""
	lt.partial.Reset()
}
