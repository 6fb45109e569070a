// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is an update emitted while a job runs.
type Event struct {
	Step      string    // Name of the step that emitted the event, empty for job level events.
	Type      EventType // What happened.
	Message   string    // Human readable text.
	Stderr    bool      // True when an EventOutput line came from stderr.
	Timestamp time.Time // When the event occurred.
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a step has begun.
	EventStarted EventType = iota
	// EventProgress carries a status message.
	EventProgress
	// EventOutput carries one line of subprocess output.
	EventOutput
	// EventCompleted indicates a step finished.
	EventCompleted
	// EventFailed indicates a step failed.
	EventFailed
	// EventSkipped indicates a step was skipped by its guard.
	EventSkipped
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventOutput:
		return "output"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// NewEvent returns an event stamped with the current time.
func NewEvent(step string, typ EventType, msg string) Event {
	return Event{
		Step:      step,
		Type:      typ,
		Message:   msg,
		Timestamp: time.Now(),
	}
}
