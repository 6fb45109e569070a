// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stepregistry

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoDef struct {
	steps.BaseDefinition `yaml:",inline"`
	Text                 string `yaml:"text"`
}

func testRegistry() Registry {
	return Registry{
		"echo": steps.MakerFunc(func(_ context.Context, payload []byte) (actionseq.Step, error) {
			def := new(echoDef)
			if err := yaml.Unmarshal(payload, def); err != nil {
				return actionseq.Step{}, err
			}

			if def.Text == "" {
				return actionseq.Step{}, errors.New("text is required")
			}

			return def.Step(func(context.Context, *actionseq.Options) (any, error) { return def.Text, nil }), nil
		}),
	}
}

func TestCreate(t *testing.T) {
	r := testRegistry()

	st, err := r.Create(context.Background(), []byte("type: echo\nname: say\ntext: hi\n"))
	require.NoError(t, err)
	assert.Equal(t, "say", st.Name)

	v, err := st.Func(context.Background(), &actionseq.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestCreate_JSONPayload(t *testing.T) {
	st, err := testRegistry().Create(context.Background(), []byte(`{"type":"echo","name":"say","text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, "say", st.Name)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
	}{
		{name: "bad yaml", payload: "type: [", err: ErrStepUnmarshal},
		{name: "unknown type", payload: "type: teleport\nname: x\n", err: ErrUnknownStepType},
		{name: "missing name", payload: "type: echo\ntext: hi\n", err: ErrMissingStepName},
		{name: "maker error", payload: "type: echo\nname: say\n", err: ErrStepCreation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testRegistry().Create(context.Background(), []byte(tt.payload))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTypes(t *testing.T) {
	r := testRegistry()
	r["shell"] = r["echo"]

	assert.Equal(t, []string{"echo", "shell"}, r.Types())
}
