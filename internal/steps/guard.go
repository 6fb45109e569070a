// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/progress"
)

// Truthy reports whether a parameter value counts as set.
// Empty strings, "false", "0", "no", zero numbers, false and nil are falsy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "", "false", "0", "no", "n":
			return false
		}

		return true
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// Applies reports whether the guards of b let the step run.
func (b BaseDefinition) Applies(opts *actionseq.Options) bool {
	if b.When != "" && !Truthy(opts.Param(b.When)) {
		return false
	}

	if b.Unless != "" && Truthy(opts.Param(b.Unless)) {
		return false
	}

	return true
}

// Step wraps fn with the guards of b and start/skip reporting.
// A step rejected by its guard returns (nil, nil).
func (b BaseDefinition) Step(fn actionseq.Func) actionseq.Step {
	return actionseq.Step{
		Name: b.Name,
		Func: func(ctx context.Context, opts *actionseq.Options) (any, error) {
			ind := progress.OrNull(opts.Progress)

			if !b.Applies(opts) {
				ind.Report(progress.NewEvent(b.Name, progress.EventSkipped, fmt.Sprintf("%s skipped", b.Name)))
				return nil, nil
			}

			ind.Report(progress.NewEvent(b.Name, progress.EventStarted, ""))

			return fn(ctx, opts)
		},
	}
}
