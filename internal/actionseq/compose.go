// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package actionseq

import (
	"errors"
	"fmt"
)

// ErrDuplicateStep is returned by Concat when two fragments use the same step name.
var ErrDuplicateStep = errors.New("duplicate step name")

// DuplicateStepError carries the offending name.
type DuplicateStepError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateStep.Error(), e.Name)
}

// Is makes errors.Is(err, ErrDuplicateStep) true.
func (e *DuplicateStepError) Is(target error) bool {
	return target == ErrDuplicateStep
}

// Concat joins fragments in order. Every step name must be unique across all fragments.
func Concat(fragments ...Steps) (Steps, error) {
	seen := make(map[string]struct{})
	out := make(Steps, 0, count(fragments))

	for _, frag := range fragments {
		for _, st := range frag {
			if _, ok := seen[st.Name]; ok {
				return nil, &DuplicateStepError{Name: st.Name}
			}

			seen[st.Name] = struct{}{}
			out = append(out, st)
		}
	}

	return out, nil
}

// MustConcat is Concat for fragments known at compile time. It panics on a duplicate name.
func MustConcat(fragments ...Steps) Steps {
	out, err := Concat(fragments...)
	if err != nil {
		panic(err)
	}

	return out
}

// Merge joins fragments in order. A step whose name already exists replaces the earlier
// step in place, keeping the earlier position.
func Merge(fragments ...Steps) Steps {
	index := make(map[string]int)
	out := make(Steps, 0, count(fragments))

	for _, frag := range fragments {
		for _, st := range frag {
			if i, ok := index[st.Name]; ok {
				out[i] = st
				continue
			}

			index[st.Name] = len(out)
			out = append(out, st)
		}
	}

	return out
}

func count(fragments []Steps) int {
	n := 0
	for _, f := range fragments {
		n += len(f)
	}

	return n
}
