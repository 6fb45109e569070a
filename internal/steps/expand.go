// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package steps

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/process"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"mvdan.cc/sh/v3/shell"
)

// ErrExpand is returned when a field cannot be expanded.
var ErrExpand = errors.New("failed to expand value")

// Lookup resolves a variable name against params, then props, then the environment.
func Lookup(opts *actionseq.Options) func(string) string {
	return func(name string) string {
		if v := opts.Param(name); v != nil {
			return fmt.Sprint(v)
		}

		if opts.Props != nil {
			if v, ok := opts.Props.Values()[name]; ok {
				return v
			}
		}

		return os.Getenv(name)
	}
}

// Environ returns the props and the scalar step parameters as environment variables.
// Parameters override props. Names that are not valid variable names are left out.
func Environ(opts *actionseq.Options) map[string]string {
	env := make(map[string]string)

	if opts.Props != nil {
		maps.Copy(env, opts.Props.Values())
	}

	for k, v := range opts.Params {
		if !isVarName(k) {
			continue
		}

		switch v := v.(type) {
		case nil:
		case string, bool, int, int64, float64:
			env[k] = fmt.Sprint(v)
		case fmt.Stringer:
			env[k] = v.String()
		}
	}

	return env
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}

// Expand performs shell parameter expansion ($name, ${name}, ${name:-default}) on s.
func Expand(s string, opts *actionseq.Options) (string, error) {
	if s == "" {
		return "", nil
	}

	out, err := shell.Expand(s, Lookup(opts))
	if err != nil {
		return "", errors.Join(ErrExpand, fmt.Errorf("%q: %w", s, err))
	}

	return out, nil
}

// Fields expands s and splits it into words using shell quoting rules.
func Fields(s string, opts *actionseq.Options) ([]string, error) {
	out, err := shell.Fields(s, Lookup(opts))
	if err != nil {
		return nil, errors.Join(ErrExpand, fmt.Errorf("%q: %w", s, err))
	}

	return out, nil
}

// ExpandAll expands every value of m.
func ExpandAll(m map[string]string, opts *actionseq.Options) (map[string]string, error) {
	out := make(map[string]string, len(m))

	for k, v := range m {
		ev, err := Expand(v, opts)
		if err != nil {
			return nil, err
		}

		out[k] = ev
	}

	return out, nil
}

// Path expands p and normalizes it against the invocation directory.
func Path(p string, opts *actionseq.Options) (string, error) {
	ep, err := Expand(p, opts)
	if err != nil {
		return "", err
	}

	if opts.Props == nil {
		return filepath.Clean(ep), nil
	}

	return opts.Props.Normalize(ep), nil
}

// Dir returns the working directory of b, defaulting to the invocation directory.
func (b BaseDefinition) Dir(opts *actionseq.Options) (string, error) {
	if b.WorkingDirectory == "" {
		if opts.Props == nil {
			return "", nil
		}

		return opts.Props.Cwd, nil
	}

	return Path(b.WorkingDirectory, opts)
}

// Output returns a process.OutputFunc forwarding lines to the indicator of opts.
func Output(step string, opts *actionseq.Options) process.OutputFunc {
	ind := progress.OrNull(opts.Progress)

	return func(line string, stderr bool) {
		ev := progress.NewEvent(step, progress.EventOutput, line)
		ev.Stderr = stderr
		ind.Report(ev)
	}
}
