// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package promptstep

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pausingIndicator struct {
	progress.NullIndicator
	calls []string
}

func (p *pausingIndicator) Pause()  { p.calls = append(p.calls, "pause") }
func (p *pausingIndicator) Resume() { p.calls = append(p.calls, "resume") }

func newOpts(input string) (*actionseq.Options, *bytes.Buffer) {
	var out bytes.Buffer
	p := props.New(searchpath.Context{Cwd: "/work"}, nil, nil,
		props.WithStreams(strings.NewReader(input), &out, &out),
		props.WithPrompter(props.NewReaderPrompter(strings.NewReader(input), &out)),
	)

	return &actionseq.Options{Props: p}, &out
}

func TestPrompt_StoresAnswer(t *testing.T) {
	opts, out := newOpts("my-app\n")
	ind := &pausingIndicator{}
	opts.Progress = ind
	opts.SetParam("kind", "component")

	st, err := stepregistry.CreateStepFromYAML(context.Background(), []byte(`
type: prompt
name: ask-name
param: name
question: "Name of the $kind?"
default: widget
`))
	require.NoError(t, err)

	v, err := st.Func(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "my-app", v)
	assert.Equal(t, "my-app", opts.Param("name"))
	assert.Equal(t, []string{"pause", "resume"}, ind.calls)
	assert.Contains(t, out.String(), "Name of the component? [widget]")
}

func TestPrompt_DefaultAndPreset(t *testing.T) {
	opts, _ := newOpts("\n")

	v, err := New(&Definition{BaseDefinition: stepsBase("name"), Question: "Name?", Default: "widget"}).Func(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "widget", v)

	opts, out := newOpts("")
	opts.SetParam("name", "preset")

	v, err = New(&Definition{BaseDefinition: stepsBase("name"), Question: "Name?"}).Func(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "preset", v)
	assert.Empty(t, out.String())
}

func TestPrompt_Confirm(t *testing.T) {
	def := &Definition{BaseDefinition: stepsBase("overwrite"), Question: "Overwrite?", Confirm: true}

	opts, _ := newOpts("y\n")
	v, err := New(def).Func(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.Equal(t, true, opts.Param("overwrite"))

	opts, _ = newOpts("n\n")
	_, err = New(def).Func(context.Background(), opts)
	require.ErrorIs(t, err, generator.ErrCancelled)
	assert.Equal(t, false, opts.Param("overwrite"))
}

func TestPrompt_Aborted(t *testing.T) {
	opts, _ := newOpts("")

	_, err := New(&Definition{BaseDefinition: stepsBase("name"), Question: "Name?"}).Func(context.Background(), opts)
	require.ErrorIs(t, err, generator.ErrCancelled)

	_, err = New(&Definition{BaseDefinition: stepsBase("name"), Question: "Name?"}).Func(context.Background(), &actionseq.Options{})
	require.ErrorIs(t, err, ErrNoProps)

	_, err = stepregistry.CreateStepFromYAML(context.Background(), []byte("type: prompt\nname: p\n"))
	require.ErrorIs(t, err, ErrEmptyQuestion)
}

func stepsBase(name string) steps.BaseDefinition {
	return steps.BaseDefinition{Type: stepType, Name: name}
}
