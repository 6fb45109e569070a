// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config contains the built-in config command and its get and set subcommands.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/color"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/progress"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	name     = "config"
	keyArg   = "key"
	valueArg = "value"
)

var (
	// ErrUnknownKey is returned by get for a key that is not set in any layer.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrMissingArgument is returned when a required argument is empty.
	ErrMissingArgument = errors.New("missing argument")
)

// Modules returns the config command and its subcommands.
func Modules() ([]module.Module, error) {
	src := module.Source{Layer: module.LayerBuiltin}

	top, err := module.NewTopLevel(module.TopLevel{
		Name:   name,
		Source: src,
		Register: func(parent *cli.Command, p *props.Props) error {
			parent.Commands = append(parent.Commands, &cli.Command{
				Name:  name,
				Usage: "Show the merged configuration",
				Description: "Configuration is merged from the built-in defaults, ~/.arcli/config.json " +
					"and .cli/config.json in the working directory, in that order.",
				Action: run(p, "Show configuration", progress.NullIndicator{}, show),
			})

			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	get, err := module.NewSub("config <get>", module.Sub{
		Source: src,
		Register: func(parent *cli.Command, p *props.Props) error {
			parent.Commands = append(parent.Commands, &cli.Command{
				Name:      "get",
				Usage:     "Print one configuration value",
				Arguments: []cli.Argument{&cli.StringArg{Name: keyArg}},
				Action:    run(p, "Get configuration value", progress.NullIndicator{}, get),
			})

			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	set, err := module.NewSub("config <set>", module.Sub{
		Source: src,
		Help:   "Values are parsed as YAML, so lists and booleans keep their type.",
		Register: func(parent *cli.Command, p *props.Props) error {
			parent.Commands = append(parent.Commands, &cli.Command{
				Name:      "set",
				Usage:     "Store a value in the user configuration file",
				Arguments: []cli.Argument{&cli.StringArg{Name: keyArg}, &cli.StringArg{Name: valueArg}},
				Action:    run(p, "Set configuration value", nil, set),
			})

			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return []module.Module{top, get, set}, nil
}

// run builds an action running fn as a single step job. A nil indicator selects one for stdout.
func run(p *props.Props, job string, ind progress.Indicator, fn actionseq.Func) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		indicator := ind
		if indicator == nil {
			indicator = tui.For(p.Stdout)
		}

		opts := &actionseq.Options{
			Params: map[string]any{
				keyArg:   cmd.StringArg(keyArg),
				valueArg: cmd.StringArg(valueArg),
			},
			Props:    p,
			Progress: indicator,
		}

		_, err := generator.Run(ctx, generator.Job{
			Name:  job,
			Steps: actionseq.Steps{{Name: job, Func: fn}},
		}, opts)

		return generator.Exit(err)
	}
}

func show(_ context.Context, opts *actionseq.Options) (any, error) {
	all := opts.Props.Config.All()

	return all, write(opts.Props.Stdout, all)
}

func get(_ context.Context, opts *actionseq.Options) (any, error) {
	key, _ := opts.Param(keyArg).(string)
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingArgument, keyArg)
	}

	if !opts.Props.Config.IsSet(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	v := opts.Props.Config.Get(key)

	return v, write(opts.Props.Stdout, v)
}

func set(_ context.Context, opts *actionseq.Options) (any, error) {
	key, _ := opts.Param(keyArg).(string)
	raw, _ := opts.Param(valueArg).(string)

	if key == "" || raw == "" {
		return nil, fmt.Errorf("%w: %s and %s are required", ErrMissingArgument, keyArg, valueArg)
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		v = raw
	}

	if err := opts.Props.Config.SetUserValue(key, v); err != nil {
		return nil, err
	}

	progress.OrNull(opts.Progress).Report(progress.NewEvent("set", progress.EventOutput, fmt.Sprintf("%s = %v", key, v)))

	return v, nil
}

// write prints strings as they are and everything else as indented JSON.
func write(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !color.Enabled()

	b, err := f.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}
