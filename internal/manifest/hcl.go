// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type hclManifest struct {
	Name        string      `hcl:"name,optional"`
	ID          string      `hcl:"id,optional"`
	Usage       string      `hcl:"usage,optional"`
	Description string      `hcl:"description,optional"`
	Aliases     []string    `hcl:"aliases,optional"`
	Help        string      `hcl:"help,optional"`
	Success     string      `hcl:"success,optional"`
	Failure     string      `hcl:"failure,optional"`
	Flags       []hclFlag   `hcl:"flag,block"`
	Actions     []hclAction `hcl:"action,block"`
}

type hclFlag struct {
	Name    string `hcl:"name,label"`
	Short   string `hcl:"short,optional"`
	Usage   string `hcl:"usage,optional"`
	Type    string `hcl:"type,optional"`
	Default string `hcl:"default,optional"`
}

// hclAction keeps the step attributes undecoded; each step type owns its own schema.
type hclAction struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// EvalContext exposes root, cwd and home to HCL expressions.
func EvalContext(ctx searchpath.Context) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(ctx.Root),
			"cwd":  cty.StringVal(ctx.Cwd),
			"home": cty.StringVal(ctx.Home),
		},
	}
}

// DecodeHCL decodes an HCL manifest. Action blocks are labelled with the step name:
//
//	action "greet" {
//	  type         = "shell"
//	  command_line = "echo hello from ${cwd}"
//	}
func DecodeHCL(data []byte, filename string, ctx searchpath.Context) (*Manifest, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, decodeErr(diags)
	}

	evalCtx := EvalContext(ctx)

	var hm hclManifest
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &hm); diags.HasErrors() {
		return nil, decodeErr(diags)
	}

	m := &Manifest{
		Name:        hm.Name,
		ID:          hm.ID,
		Usage:       hm.Usage,
		Description: hm.Description,
		Aliases:     hm.Aliases,
		Help:        hm.Help,
		Success:     hm.Success,
		Failure:     hm.Failure,
	}

	for _, f := range hm.Flags {
		m.Flags = append(m.Flags, Flag(f))
	}

	for _, a := range hm.Actions {
		action, err := decodeAction(a, evalCtx)
		if err != nil {
			return nil, err
		}

		m.Actions = append(m.Actions, action)
	}

	return m, nil
}

// decodeAction evaluates the attributes of an action block and converts them to the
// generic map form shared with YAML manifests, via JSON.
func decodeAction(a hclAction, evalCtx *hcl.EvalContext) (map[string]any, error) {
	attrs, diags := a.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, decodeErr(diags)
	}

	vals := make(map[string]cty.Value, len(attrs))

	for name, attr := range attrs {
		v, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, decodeErr(diags)
		}

		if v.IsNull() {
			continue
		}

		vals[name] = v
	}

	obj := cty.ObjectVal(vals)

	js, err := ctyjson.Marshal(obj, obj.Type())
	if err != nil {
		return nil, errors.Join(ErrDecode, fmt.Errorf("action %q: %w", a.Name, err))
	}

	action := make(map[string]any)
	if err := yaml.Unmarshal(js, &action); err != nil {
		return nil, errors.Join(ErrDecode, fmt.Errorf("action %q: %w", a.Name, err))
	}

	action["name"] = a.Name

	return action, nil
}

func decodeErr(diags hcl.Diagnostics) error {
	var err error
	err = multierror.Append(err, diags.Errs()...)

	return errors.Join(ErrDecode, err)
}
