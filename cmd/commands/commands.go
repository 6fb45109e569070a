// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands is the built-in command that lists every registered command.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/color"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/urfave/cli/v3"
)

const (
	name        = "commands"
	verboseFlag = "verbose"
)

// DiagnosticsFunc returns the discovery errors collected so far.
type DiagnosticsFunc func() error

// Module returns the commands module listing the contents of reg.
func Module(reg *commandregistry.Registry, diags DiagnosticsFunc) (module.Module, error) {
	return module.NewTopLevel(module.TopLevel{
		Name:   name,
		Help:   "Use --verbose to see manifests that failed to load.",
		Source: module.Source{Layer: module.LayerBuiltin},
		Register: func(parent *cli.Command, p *props.Props) error {
			parent.Commands = append(parent.Commands, command(reg, diags, p))
			return nil
		},
	})
}

func command(reg *commandregistry.Registry, diags DiagnosticsFunc, p *props.Props) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "List available commands and where they were loaded from",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"V"},
				Usage:   "Also print discovery errors",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			job := generator.Job{
				Name: "List commands",
				Steps: actionseq.Steps{
					{Name: "list", Func: list(reg)},
					steps.BaseDefinition{Name: "diagnostics", When: verboseFlag}.Step(diagnostics(diags)),
				},
			}

			opts := &actionseq.Options{
				Params:   map[string]any{verboseFlag: cmd.Bool(verboseFlag)},
				Props:    p,
				Progress: progress.NullIndicator{},
			}

			_, err := generator.Run(ctx, job, opts)

			return generator.Exit(err)
		},
	}
}

// Rows returns one row per command and subcommand: the invocation, the layer and the manifest path.
func Rows(reg *commandregistry.Registry) [][]string {
	var rows [][]string

	for _, n := range reg.AllCommandNames() {
		m, _ := reg.Get(n)
		rows = append(rows, []string{n, m.Origin().Layer, m.Origin().Path})
	}

	for _, id := range reg.AllSubcommandIDs() {
		m, _ := reg.GetSubcommand(id)
		rows = append(rows, []string{strings.ReplaceAll(id, ".", " "), m.Origin().Layer, m.Origin().Path})
	}

	return rows
}

func list(reg *commandregistry.Registry) actionseq.Func {
	return func(_ context.Context, opts *actionseq.Options) (any, error) {
		rows := Rows(reg)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("COMMAND", "LAYER", "SOURCE").
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return color.Style(color.Highlight).Padding(0, 1)
				}

				return lipgloss.NewStyle().Padding(0, 1)
			})

		_, err := fmt.Fprintln(opts.Props.Stdout, t.String())

		return len(rows), err
	}
}

func diagnostics(diags DiagnosticsFunc) actionseq.Func {
	return func(_ context.Context, opts *actionseq.Options) (any, error) {
		err := diags()
		if err == nil {
			_, werr := fmt.Fprintln(opts.Props.Stdout, color.Colorize("No discovery errors.", color.Success))
			return nil, werr
		}

		_, werr := fmt.Fprintln(opts.Props.Stdout, color.Colorize(err.Error(), color.Warning))

		return err.Error(), werr
	}
}
