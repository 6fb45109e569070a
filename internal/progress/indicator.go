// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

// Indicator is the user facing progress display for one job.
// Implementations must be safe for concurrent use, subprocess output is reported from reader goroutines.
type Indicator interface {
	// Start shows the indicator with the given text.
	Start(text string)
	// Report sends an update while the job runs.
	Report(ev Event)
	// Succeed stops the indicator with a success message.
	Succeed(text string)
	// Fail stops the indicator with a failure message.
	Fail(text string)
}

var _ Indicator = NullIndicator{}

// NullIndicator discards everything.
type NullIndicator struct{}

// Start implements Indicator.
func (NullIndicator) Start(string) {}

// Report implements Indicator.
func (NullIndicator) Report(Event) {}

// Succeed implements Indicator.
func (NullIndicator) Succeed(string) {}

// Fail implements Indicator.
func (NullIndicator) Fail(string) {}

// OrNull returns ind, or a NullIndicator when ind is nil.
func OrNull(ind Indicator) Indicator {
	if ind == nil {
		return NullIndicator{}
	}

	return ind
}

// Pauser is implemented by indicators that own the terminal.
// Steps that read from the terminal pause the indicator first.
type Pauser interface {
	Pause()
	Resume()
}
