// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package actionseq

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
)

// Func is the body of a step.
// Returning (nil, nil) is a success, guarded steps do this when they do not apply.
type Func func(ctx context.Context, opts *Options) (any, error)

// Step is a named unit of work.
type Step struct {
	Name string
	Func Func
}

// Steps is an ordered list of steps.
type Steps []Step

// Names returns the step names in order.
func (s Steps) Names() []string {
	out := make([]string, len(s))
	for i, st := range s {
		out[i] = st.Name
	}

	return out
}

// Options is the mutable bag shared by every step of one run.
type Options struct {
	Params   map[string]any
	Props    *props.Props
	Progress progress.Indicator
}

// Param returns the named parameter, or nil.
func (o *Options) Param(name string) any {
	if o == nil || o.Params == nil {
		return nil
	}

	return o.Params[name]
}

// SetParam stores a parameter, creating the map if needed.
func (o *Options) SetParam(name string, v any) {
	if o.Params == nil {
		o.Params = make(map[string]any)
	}

	o.Params[name] = v
}

// Clone returns a copy with its own Params map. Props and Progress are shared.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}

	return &Options{
		Params:   maps.Clone(o.Params),
		Props:    o.Props,
		Progress: o.Progress,
	}
}

// Results maps step names to the values they returned, in execution order.
type Results struct {
	names  []string
	values map[string]any
}

func newResults(n int) *Results {
	return &Results{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

func (r *Results) set(name string, v any) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}

	r.values[name] = v
}

// Get returns the value of the named step and whether the step ran.
func (r *Results) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}

	v, ok := r.values[name]

	return v, ok
}

// Names returns the names of the steps that ran, in order.
func (r *Results) Names() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.names)
}

// Len returns the number of recorded steps.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}

	return len(r.names)
}

// All returns a copy of the name to value map.
func (r *Results) All() map[string]any {
	if r == nil {
		return map[string]any{}
	}

	return maps.Clone(r.values)
}

// StepPanicError is returned when a step panics.
type StepPanicError struct {
	Step  string
	Value any
}

// Error implements the error interface.
func (e *StepPanicError) Error() string {
	switch x := e.Value.(type) {
	case error:
		return fmt.Sprintf("step %q panicked: %s", e.Step, x.Error())
	default:
		return fmt.Sprintf("step %q panicked: %v", e.Step, x)
	}
}

// Unwrap returns the panic value when it is an error.
func (e *StepPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// Run executes steps in order against opts.
// It returns the results of every step, or the first error and no results.
// The context is checked before each step.
func Run(ctx context.Context, steps Steps, opts *Options) (*Results, error) {
	if opts == nil {
		opts = &Options{}
	}

	if opts.Params == nil {
		opts.Params = make(map[string]any)
	}

	res := newResults(len(steps))

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if st.Func == nil {
			res.set(st.Name, nil)
			continue
		}

		v, err := runStep(ctx, st, opts)
		if err != nil {
			return nil, err
		}

		res.set(st.Name, v)
	}

	return res, nil
}

func runStep(ctx context.Context, st Step, opts *Options) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &StepPanicError{Step: st.Name, Value: r}
		}
	}()

	return st.Func(ctx, opts)
}
