// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/stepregistry"
	"github.com/matt-FFFFFF/arcli/internal/tui"
	"github.com/urfave/cli/v3"
)

// ArgsParam holds the positional arguments, joined by spaces.
// Each argument is also available as arg1, arg2 and so on.
const ArgsParam = "args"

// Module validates m, builds its steps with reg and returns the command module.
// A top-level manifest without actions is kept as a parent for subcommands;
// a subcommand manifest without actions is not a command.
func (m *Manifest) Module(ctx context.Context, reg stepregistry.Registry, src module.Source) (module.Module, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	steps, err := m.Steps(ctx, reg)
	if err != nil {
		return nil, err
	}

	if m.Name != "" {
		return module.NewTopLevel(module.TopLevel{
			Name:     m.Name,
			Help:     m.Help,
			Source:   src,
			Register: m.register(m.Name, steps),
		})
	}

	if len(steps) == 0 {
		return nil, ErrNotCommand
	}

	_, action, err := module.SplitID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return module.NewSub(m.ID, module.Sub{
		Help:     m.Help,
		Source:   src,
		Register: m.register(action, steps),
	})
}

// Steps creates the steps of m from its actions, in order.
func (m *Manifest) Steps(ctx context.Context, reg stepregistry.Registry) (actionseq.Steps, error) {
	steps := make(actionseq.Steps, 0, len(m.Actions))

	for i, action := range m.Actions {
		payload, err := yaml.Marshal(action)
		if err != nil {
			return nil, fmt.Errorf("%w: action %d: %w", ErrMalformed, i, err)
		}

		st, err := reg.Create(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: action %d: %w", ErrMalformed, i, err)
		}

		steps = append(steps, st)
	}

	if _, err := actionseq.Concat(steps); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return steps, nil
}

func (m *Manifest) register(name string, steps actionseq.Steps) module.RegisterFunc {
	return func(parent *cli.Command, p *props.Props) error {
		parent.Commands = append(parent.Commands, m.Command(name, steps, p))
		return nil
	}
}

// Command builds the CLI surface of m. The help text is appended to the description.
// Without steps the command only shows its help.
func (m *Manifest) Command(name string, steps actionseq.Steps, p *props.Props) *cli.Command {
	desc := m.Description
	if m.Help != "" {
		desc = strings.TrimSpace(strings.Join([]string{desc, m.Help}, "\n\n"))
	}

	cmd := &cli.Command{
		Name:        name,
		Aliases:     m.Aliases,
		Usage:       m.Usage,
		Description: desc,
		Flags:       m.cliFlags(),
	}

	if len(steps) == 0 {
		cmd.Action = func(_ context.Context, c *cli.Command) error {
			return cli.ShowSubcommandHelp(c)
		}

		return cmd
	}

	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		opts := &actionseq.Options{
			Params:   m.Params(c),
			Props:    p,
			Progress: tui.For(p.Stdout),
		}

		job := generator.Job{
			Name:    name,
			Steps:   steps,
			Success: m.Success,
			Failure: m.Failure,
		}

		_, err := generator.Run(ctx, job, opts)

		return generator.Exit(err)
	}

	return cmd
}

func (m *Manifest) cliFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(m.Flags))

	for _, f := range m.Flags {
		var aliases []string
		if f.Short != "" {
			aliases = []string{f.Short}
		}

		// Validate rejected defaults that do not parse.
		switch f.Type {
		case FlagBool:
			b, _ := strconv.ParseBool(f.Default)
			flags = append(flags, &cli.BoolFlag{Name: f.Name, Aliases: aliases, Usage: f.Usage, Value: b})
		case FlagInt:
			n, _ := strconv.Atoi(f.Default)
			flags = append(flags, &cli.IntFlag{Name: f.Name, Aliases: aliases, Usage: f.Usage, Value: n})
		default:
			flags = append(flags, &cli.StringFlag{Name: f.Name, Aliases: aliases, Usage: f.Usage, Value: f.Default})
		}
	}

	return flags
}

// Params collects the flag values and positional arguments of an invocation.
// String flags that are unset and have no default are left out, so prompt steps still ask for them.
func (m *Manifest) Params(c *cli.Command) map[string]any {
	params := make(map[string]any, len(m.Flags)+1)

	for _, f := range m.Flags {
		switch f.Type {
		case FlagBool:
			params[f.Name] = c.Bool(f.Name)
		case FlagInt:
			params[f.Name] = c.Int(f.Name)
		default:
			if v := c.String(f.Name); v != "" || c.IsSet(f.Name) {
				params[f.Name] = v
			}
		}
	}

	args := c.Args().Slice()
	params[ArgsParam] = strings.Join(args, " ")

	for i, a := range args {
		params["arg"+strconv.Itoa(i+1)] = a
	}

	return params
}
