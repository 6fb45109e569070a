// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package generator wraps the action sequence executor with progress reporting.
package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/progress"
)

// CancelledMessage is shown when a job fails with an empty error message and no failure text.
const CancelledMessage = "Action cancelled"

// ErrCancelled is returned by steps when the user declines to continue.
// Commands treat it as a clean exit.
var ErrCancelled = errors.New("cancelled by user")

// LogOutput receives the log records held back while an indicator owned the terminal.
var LogOutput io.Writer = os.Stderr

// Job is one named run of steps.
type Job struct {
	Name    string          // Shown when the indicator starts.
	Steps   actionseq.Steps // What to run.
	Success string          // Shown on success, defaults to Name.
	Failure string          // Shown on failure when the error has no message.
}

// Run starts the indicator, runs the steps and reports the outcome.
// The executor error is always returned to the caller.
func Run(ctx context.Context, job Job, opts *actionseq.Options) (*actionseq.Results, error) {
	if opts == nil {
		opts = &actionseq.Options{}
	}

	ind := progress.OrNull(opts.Progress)
	opts.Progress = ind

	if _, ok := ind.(progress.Pauser); ok {
		logs := &bytes.Buffer{}
		ctx = ctxlog.NewForTUI(ctx, logs)

		defer func() { _, _ = logs.WriteTo(LogOutput) }()
	}

	ind.Start(job.Name)

	res, err := actionseq.Run(ctx, job.Steps, opts)
	if err != nil {
		ctxlog.Debug(ctx, "job failed", "job", job.Name, "error", err)
		ind.Fail(failureMessage(job, err))

		return nil, err
	}

	msg := job.Success
	if msg == "" {
		msg = job.Name
	}

	ind.Succeed(msg)

	return res, nil
}

func failureMessage(job Job, err error) string {
	if errors.Is(err, ErrCancelled) {
		return CancelledMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	if job.Failure != "" {
		return job.Failure
	}

	return CancelledMessage
}

// IsCancelled reports whether err means the user declined to continue.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
