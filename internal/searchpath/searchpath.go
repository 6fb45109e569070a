// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package searchpath expands configured command search path templates into globs.
//
// A template may contain the tokens [root], [cwd] and [home]. Every resolved template gets the
// recursive manifest suffix appended and uses forward slashes on every platform.
package searchpath

import (
	"strings"
)

// Suffix is appended to every resolved template.
const Suffix = "/**/index.{yaml,yml,hcl}"

// Tokens.
const (
	TokenRoot = "[root]"
	TokenCwd  = "[cwd]"
	TokenHome = "[home]"
)

// Context supplies the token values.
type Context struct {
	Root string
	Cwd  string
	Home string
}

// Resolve expands tokens in each template and appends Suffix.
// Token values are escaped so that meta characters in a directory name match literally.
// Unknown tokens are left as literal text. The output has one glob per template, in input order.
func Resolve(templates []string, ctx Context) []string {
	r := strings.NewReplacer(
		TokenRoot, escapeMeta(ctx.Root),
		TokenCwd, escapeMeta(ctx.Cwd),
		TokenHome, escapeMeta(ctx.Home),
	)

	out := make([]string, 0, len(templates))

	for _, t := range templates {
		p := r.Replace(toSlash(t))
		p = strings.TrimRight(p, "/")
		out = append(out, p+Suffix)
	}

	return out
}

// metaEscaper escapes the characters doublestar treats as pattern syntax.
var metaEscaper = strings.NewReplacer(
	"*", `\*`,
	"?", `\?`,
	"[", `\[`,
	"]", `\]`,
	"{", `\{`,
	"}", `\}`,
)

// escapeMeta makes a directory path match only itself inside a glob.
func escapeMeta(dir string) string {
	return metaEscaper.Replace(toSlash(dir))
}

func toSlash(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// Layer is one precedence layer of search paths.
type Layer struct {
	Name  string
	Globs []string
}

// Source provides the templates for a layer.
type Source interface {
	SearchPaths(layer string) []string
}

// Layered resolves the templates of each named layer, keeping the layer order.
func Layered(src Source, layers []string, ctx Context) []Layer {
	out := make([]Layer, 0, len(layers))

	for _, name := range layers {
		out = append(out, Layer{
			Name:  name,
			Globs: Resolve(src.SearchPaths(name), ctx),
		})
	}

	return out
}
