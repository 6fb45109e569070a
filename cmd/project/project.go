// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project contains the built-in actinium and reactium commands and their init subcommands.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/config"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/matt-FFFFFF/arcli/internal/steps/downloadstep"
	"github.com/matt-FFFFFF/arcli/internal/steps/execstep"
	"github.com/matt-FFFFFF/arcli/internal/steps/promptstep"
	"github.com/matt-FFFFFF/arcli/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// Project kinds.
const (
	Actinium = "actinium"
	Reactium = "reactium"
)

const (
	directoryFlag = "directory"
	noInstallFlag = "no-install"
	overwriteFlag = "overwrite"

	kindParam     = "kind"
	dirParam      = "dir"
	urlParam      = "url"
	pmParam       = "packageManager"
	notEmptyParam = "not-empty"
)

// ErrNoTemplate is returned when the configuration has no archive URL for a project kind.
var ErrNoTemplate = errors.New("no template configured")

var descriptions = map[string]string{
	Actinium: "Actinium is the API server of the Reactium framework.",
	Reactium: "Reactium is the web UI framework.",
}

// Modules returns the parent commands and their init subcommands.
func Modules() ([]module.Module, error) {
	var mods []module.Module

	for _, kind := range []string{Actinium, Reactium} {
		top, err := module.NewTopLevel(module.TopLevel{
			Name:     kind,
			Source:   module.Source{Layer: module.LayerBuiltin},
			Register: parent(kind),
		})
		if err != nil {
			return nil, err
		}

		sub, err := module.NewSub(kind+" <init>", module.Sub{
			Help:     fmt.Sprintf("Example: arcli %s init --directory my-app --no-install", kind),
			Source:   module.Source{Layer: module.LayerBuiltin},
			Register: initCommand(kind),
		})
		if err != nil {
			return nil, err
		}

		mods = append(mods, top, sub)
	}

	return mods, nil
}

func parent(kind string) module.RegisterFunc {
	return func(p *cli.Command, _ *props.Props) error {
		p.Commands = append(p.Commands, &cli.Command{
			Name:        kind,
			Usage:       fmt.Sprintf("Manage %s projects", kind),
			Description: descriptions[kind],
			Action: func(_ context.Context, cmd *cli.Command) error {
				return cli.ShowSubcommandHelp(cmd)
			},
		})

		return nil
	}
}

func initCommand(kind string) module.RegisterFunc {
	return func(parent *cli.Command, p *props.Props) error {
		parent.Commands = append(parent.Commands, &cli.Command{
			Name:  "init",
			Usage: fmt.Sprintf("Create a new %s project", kind),
			Flags: []cli.Flag{
				&cli.StringFlag{Name: directoryFlag, Aliases: []string{"d"}, Usage: "Project directory", Value: "."},
				&cli.BoolFlag{Name: noInstallFlag, Usage: "Skip installing dependencies"},
				&cli.BoolFlag{Name: overwriteFlag, Aliases: []string{"o"}, Usage: "Use a non-empty directory without asking"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := &actionseq.Options{
					Params: map[string]any{
						kindParam:     kind,
						directoryFlag: cmd.String(directoryFlag),
						noInstallFlag: cmd.Bool(noInstallFlag),
						overwriteFlag: cmd.Bool(overwriteFlag),
					},
					Props:    p,
					Progress: tui.For(p.Stdout),
				}

				_, err := generator.Run(ctx, InitJob(kind), opts)

				return generator.Exit(err)
			},
		})

		return nil
	}
}

// InitJob returns the job creating a project of kind.
func InitJob(kind string) generator.Job {
	return generator.Job{
		Name:    fmt.Sprintf("Creating %s project", kind),
		Success: fmt.Sprintf("%s project ready", kind),
		Steps: actionseq.Steps{
			{Name: "prepare", Func: prepare},
			promptstep.New(&promptstep.Definition{
				BaseDefinition: steps.BaseDefinition{Name: "confirm", When: notEmptyParam, Unless: overwriteFlag},
				Question:       "$dir is not empty. Continue?",
				Param:          "confirm",
				Default:        "n",
				Confirm:        true,
			}),
			downloadstep.New(&downloadstep.Definition{
				BaseDefinition: steps.BaseDefinition{Name: "download"},
				URL:            "$" + urlParam,
				Destination:    "$" + dirParam,
				Strip:          true,
			}),
			execstep.New(&execstep.Definition{
				BaseDefinition: steps.BaseDefinition{Name: "install", Unless: noInstallFlag, WorkingDirectory: "$" + dirParam},
				Command:        "$" + pmParam,
				Args:           []string{"install"},
			}),
			{Name: "configure", Func: configure},
		},
	}
}

// prepare resolves the target directory, the template URL and the package manager.
func prepare(_ context.Context, opts *actionseq.Options) (any, error) {
	kind, _ := opts.Param(kindParam).(string)

	dir, err := steps.Path(fmt.Sprint(opts.Param(directoryFlag)), opts)
	if err != nil {
		return nil, err
	}

	cfg := opts.Props.Config

	url := cfg.Template(kind)
	if url == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplate, kind)
	}

	opts.SetParam(dirParam, dir)
	opts.SetParam(urlParam, url)
	opts.SetParam(pmParam, cfg.PackageManager())

	if empty, err := afero.IsEmpty(steps.FS(opts), dir); err == nil && !empty {
		opts.SetParam(notEmptyParam, true)
	}

	return dir, nil
}

// configure writes the project configuration stub.
func configure(_ context.Context, opts *actionseq.Options) (any, error) {
	dir, _ := opts.Param(dirParam).(string)

	values := map[string]any{
		"project": opts.Param(kindParam),
		"created": time.Now().UTC().Format(time.RFC3339),
	}

	if err := config.WriteProjectFile(steps.FS(opts), dir, values); err != nil {
		return nil, err
	}

	return config.ProjectFile(dir), nil
}
