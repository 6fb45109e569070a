// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"slices"
	"sync"
)

var _ Indicator = (*Recorder)(nil)

// Call is one recorded Indicator method call.
type Call struct {
	Method string // Start, Report, Succeed or Fail.
	Text   string
	Event  Event
}

// Recorder keeps every call it receives. It backs tests and the quiet mode of commands
// that still want to inspect what a job reported.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Start implements Indicator.
func (r *Recorder) Start(text string) { r.add(Call{Method: "Start", Text: text}) }

// Report implements Indicator.
func (r *Recorder) Report(ev Event) { r.add(Call{Method: "Report", Text: ev.Message, Event: ev}) }

// Succeed implements Indicator.
func (r *Recorder) Succeed(text string) { r.add(Call{Method: "Succeed", Text: text}) }

// Fail implements Indicator.
func (r *Recorder) Fail(text string) { r.add(Call{Method: "Fail", Text: text}) }

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.calls)
}

// Methods returns the recorded method names in order.
func (r *Recorder) Methods() []string {
	calls := r.Calls()
	out := make([]string, len(calls))

	for i, c := range calls {
		out[i] = c.Method
	}

	return out
}

// Last returns the most recent call, or false if nothing was recorded.
func (r *Recorder) Last() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.calls) == 0 {
		return Call{}, false
	}

	return r.calls[len(r.calls)-1], true
}

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, c)
}
