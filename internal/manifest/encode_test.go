// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scaffold() *Manifest {
	return &Manifest{
		Name:        "hello",
		Usage:       "Say hello",
		Description: "Prints a greeting",
		Aliases:     []string{"hi"},
		Flags:       []Flag{{Name: "who", Short: "w", Default: "world"}},
		Actions: []map[string]any{
			{"name": "greet", "type": "shell", "command_line": "echo hello $who"},
			{"name": "files", "type": "copy", "source": "a", "destination": "b", "when": "copy"},
		},
	}
}

func TestEncodeYAML(t *testing.T) {
	b, err := EncodeYAML(scaffold())
	require.NoError(t, err)

	m, err := DecodeYAML(b)
	require.NoError(t, err)
	assert.Equal(t, scaffold(), m)
}

func TestEncodeHCL(t *testing.T) {
	b, err := EncodeHCL(scaffold())
	require.NoError(t, err)
	assert.Contains(t, string(b), `action "greet" {`)

	m, err := DecodeHCL(b, "index.hcl", testCtx())
	require.NoError(t, err)
	assert.Equal(t, scaffold(), m)
}

func TestEncodeHCL_UnnamedAction(t *testing.T) {
	_, err := EncodeHCL(&Manifest{Name: "x", Actions: []map[string]any{{"type": "shell"}}})
	require.ErrorIs(t, err, ErrEncode)
}
