// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrEncode is returned when a manifest cannot be written.
var ErrEncode = errors.New("failed to encode manifest")

// EncodeYAML renders m as an index.yaml document.
func EncodeYAML(m *Manifest) ([]byte, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	return b, nil
}

// EncodeHCL renders m as an index.hcl document. Action values must be strings,
// booleans, numbers, or lists and maps of those.
func EncodeHCL(m *Manifest) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	setString(body, "name", m.Name)
	setString(body, "id", m.ID)
	setString(body, "usage", m.Usage)
	setString(body, "description", m.Description)
	setString(body, "help", m.Help)
	setString(body, "success", m.Success)
	setString(body, "failure", m.Failure)

	if len(m.Aliases) > 0 {
		vals := make([]cty.Value, 0, len(m.Aliases))
		for _, a := range m.Aliases {
			vals = append(vals, cty.StringVal(a))
		}

		body.SetAttributeValue("aliases", cty.ListVal(vals))
	}

	for _, fl := range m.Flags {
		body.AppendNewline()

		fb := body.AppendNewBlock("flag", []string{fl.Name}).Body()
		setString(fb, "short", fl.Short)
		setString(fb, "usage", fl.Usage)
		setString(fb, "type", fl.Type)
		setString(fb, "default", fl.Default)
	}

	for i, action := range m.Actions {
		name, _ := action["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%w: action %d has no name", ErrEncode, i)
		}

		body.AppendNewline()

		ab := body.AppendNewBlock("action", []string{name}).Body()

		for _, k := range slices.Sorted(maps.Keys(action)) {
			if k == "name" {
				continue
			}

			v, err := toCty(action[k])
			if err != nil {
				return nil, fmt.Errorf("%w: action %q attribute %q: %w", ErrEncode, name, k, err)
			}

			ab.SetAttributeValue(k, v)
		}
	}

	return f.Bytes(), nil
}

func setString(body *hclwrite.Body, name, v string) {
	if v != "" {
		body.SetAttributeValue(name, cty.StringVal(v))
	}
}

func toCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return cty.ListValEmpty(cty.DynamicPseudoType), nil
		}

		vals := make([]cty.Value, 0, len(x))
		for _, e := range x {
			cv, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			vals = append(vals, cv)
		}

		return cty.TupleVal(vals), nil
	case map[string]any:
		vals := make(map[string]cty.Value, len(x))
		for k, e := range x {
			cv, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			vals[k] = cv
		}

		return cty.ObjectVal(vals), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, err
	}

	return gocty.ToCtyValue(v, ty)
}
