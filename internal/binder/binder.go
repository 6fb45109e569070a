// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package binder attaches registered command modules to a urfave/cli root command
// and decides how much discovery an invocation needs.
package binder

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/arcli"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/urfave/cli/v3"
)

// DefaultUsageText is set on the root command when it has none.
const DefaultUsageText = "arcli <command> [options]"

// Attach registers every top-level module of reg on root, in name order, followed by
// each command's subcommand tree. The version and usage text are set once at the end.
func Attach(ctx context.Context, root *cli.Command, reg *commandregistry.Registry, p *props.Props) error {
	root.HideHelpCommand = true
	attached := make(map[string]struct{})

	for _, name := range reg.AllCommandNames() {
		m, _ := reg.Get(name)

		cmd, err := register(root, name, m, p)
		if err != nil {
			return err
		}

		if cmd == nil {
			ctxlog.Debug(ctx, "module did not declare its command", "name", name, "source", m.Origin().String())
			continue
		}

		if err := attachTree(ctx, cmd, name, reg, p, attached); err != nil {
			return err
		}
	}

	for _, id := range reg.AllSubcommandIDs() {
		if _, ok := attached[id]; !ok {
			m, _ := reg.GetSubcommand(id)
			ctxlog.Debug(ctx, "ignoring subcommand without parent", "id", id, "source", m.Origin().String())
		}
	}

	if root.Version == "" {
		root.Version = arcli.Version
	}

	if root.UsageText == "" {
		root.UsageText = DefaultUsageText
	}

	return nil
}

// AttachSubcommands registers the subcommands of parent, keyed by parent.Name, and their descendants.
func AttachSubcommands(ctx context.Context, parent *cli.Command, reg *commandregistry.Registry, p *props.Props) error {
	return attachTree(ctx, parent, parent.Name, reg, p, make(map[string]struct{}))
}

func attachTree(
	ctx context.Context, parent *cli.Command, id string, reg *commandregistry.Registry, p *props.Props, attached map[string]struct{},
) error {
	for _, m := range reg.Subcommands(id) {
		s, _ := module.AsSub(m)

		cmd, err := register(parent, s.Action, m, p)
		if err != nil {
			return err
		}

		if cmd == nil {
			ctxlog.Debug(ctx, "module did not declare its command", "id", m.Key(), "source", m.Origin().String())
			continue
		}

		attached[m.Key()] = struct{}{}

		if err := attachTree(ctx, cmd, m.Key(), reg, p, attached); err != nil {
			return err
		}
	}

	return nil
}

// register removes any command named name from parent, then lets m declare its own.
func register(parent *cli.Command, name string, m module.Module, p *props.Props) (*cli.Command, error) {
	parent.Commands = slices.DeleteFunc(parent.Commands, func(c *cli.Command) bool {
		return c.Name == name
	})

	if err := m.Register(parent, p); err != nil {
		return nil, err
	}

	return child(parent, name), nil
}

func child(parent *cli.Command, name string) *cli.Command {
	for _, c := range parent.Commands {
		if c.Name == name {
			return c
		}
	}

	return nil
}
