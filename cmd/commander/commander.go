// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commander is the built-in command that scaffolds a new manifest command.
package commander

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/actionseq"
	"github.com/matt-FFFFFF/arcli/internal/generator"
	"github.com/matt-FFFFFF/arcli/internal/manifest"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/steps"
	"github.com/matt-FFFFFF/arcli/internal/steps/mkdirstep"
	"github.com/matt-FFFFFF/arcli/internal/steps/promptstep"
	"github.com/matt-FFFFFF/arcli/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	name = "commander"

	nameFlag        = "name"
	idFlag          = "id"
	formatFlag      = "format"
	destinationFlag = "destination"
	overwriteFlag   = "overwrite"

	dirParam    = "dir"
	fileParam   = "file"
	existsParam = "exists"

	formatYAML = "yaml"
	formatHCL  = "hcl"
)

var (
	// ErrInvalidFormat is returned for a format other than yaml or hcl.
	ErrInvalidFormat = errors.New("format must be yaml or hcl")
	// ErrMissingName is returned when neither a name nor an id is given.
	ErrMissingName = errors.New("a command name or id is required")
)

// Module returns the commander module.
func Module() (module.Module, error) {
	return module.NewTopLevel(module.TopLevel{
		Name:     name,
		Help:     "Example: arcli commander --name deploy --format hcl",
		Source:   module.Source{Layer: module.LayerBuiltin},
		Register: register,
	})
}

func register(parent *cli.Command, p *props.Props) error {
	parent.Commands = append(parent.Commands, &cli.Command{
		Name:  name,
		Usage: "Create a new command manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: nameFlag, Aliases: []string{"n"}, Usage: "Name of a top level command"},
			&cli.StringFlag{Name: idFlag, Usage: `Id of a subcommand, e.g. "reactium <plugin>"`},
			&cli.StringFlag{Name: formatFlag, Aliases: []string{"f"}, Usage: "Manifest format: yaml or hcl", Value: formatYAML},
			&cli.StringFlag{
				Name:    destinationFlag,
				Aliases: []string{"d"},
				Usage:   "Directory holding the project commands",
				Value:   filepath.Join(".cli", "commands"),
			},
			&cli.BoolFlag{Name: overwriteFlag, Aliases: []string{"o"}, Usage: "Replace an existing manifest without asking"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params := map[string]any{
				formatFlag:      cmd.String(formatFlag),
				destinationFlag: cmd.String(destinationFlag),
				overwriteFlag:   cmd.Bool(overwriteFlag),
			}

			if v := cmd.String(idFlag); v != "" {
				params[idFlag] = v
			}

			if v := cmd.String(nameFlag); v != "" {
				params[nameFlag] = v
			} else if cmd.Args().Present() {
				params[nameFlag] = cmd.Args().First()
			}

			opts := &actionseq.Options{Params: params, Props: p, Progress: tui.For(p.Stdout)}

			_, err := generator.Run(ctx, Job(), opts)

			return generator.Exit(err)
		},
	})

	return nil
}

// Job returns the scaffolding job. Its parameters are the command flags.
func Job() generator.Job {
	return generator.Job{
		Name:    "Create command",
		Success: "Command created",
		Steps: actionseq.MustConcat(
			actionseq.Steps{
				promptstep.New(&promptstep.Definition{
					BaseDefinition: steps.BaseDefinition{Name: "ask name", Unless: idFlag},
					Question:       "Command name?",
					Param:          nameFlag,
				}),
				{Name: "validate", Func: validate},
				promptstep.New(&promptstep.Definition{
					BaseDefinition: steps.BaseDefinition{Name: "confirm overwrite", When: existsParam, Unless: overwriteFlag},
					Question:       "A manifest already exists in $dir. Overwrite?",
					Param:          "confirm overwrite",
					Default:        "n",
					Confirm:        true,
				}),
			},
			actionseq.Steps{
				mkdirstep.New(&mkdirstep.Definition{
					BaseDefinition: steps.BaseDefinition{Name: "prepare directory"},
					Path:           "$" + dirParam,
				}),
				{Name: "render manifest", Func: render},
			},
		),
	}
}

// validate checks the name or id and works out the manifest directory and file.
func validate(_ context.Context, opts *actionseq.Options) (any, error) {
	nm, _ := opts.Param(nameFlag).(string)
	id, _ := opts.Param(idFlag).(string)

	if id != "" {
		nm = ""
	}

	m := &manifest.Manifest{Name: nm, ID: id}
	if err := m.Validate(); err != nil {
		if errors.Is(err, manifest.ErrNotCommand) {
			return nil, ErrMissingName
		}

		return nil, err
	}

	format, _ := opts.Param(formatFlag).(string)
	if format != formatYAML && format != formatHCL {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	dest, err := steps.Path(fmt.Sprint(opts.Param(destinationFlag)), opts)
	if err != nil {
		return nil, err
	}

	key := m.Name
	if m.ID != "" {
		if _, _, err := module.SplitID(m.ID); err != nil {
			return nil, err
		}

		key = module.NormalizeID(m.ID)
	}

	dir := filepath.Join(dest, filepath.FromSlash(strings.ReplaceAll(key, ".", "/")))
	file := filepath.Join(dir, "index."+format)

	opts.SetParam(nameFlag, m.Name)
	opts.SetParam(idFlag, m.ID)
	opts.SetParam(dirParam, dir)
	opts.SetParam(fileParam, file)

	fs := steps.FS(opts)
	for _, ext := range []string{"yaml", "yml", "hcl"} {
		if ok, _ := afero.Exists(fs, filepath.Join(dir, "index."+ext)); ok {
			opts.SetParam(existsParam, true)
		}
	}

	return file, nil
}

// Scaffold returns the starter manifest for a name or id.
func Scaffold(nm, id string) *manifest.Manifest {
	label := nm
	if id != "" {
		label = strings.ReplaceAll(module.NormalizeID(id), ".", " ")
	}

	return &manifest.Manifest{
		Name:        nm,
		ID:          id,
		Usage:       fmt.Sprintf("Run %s", label),
		Description: fmt.Sprintf("The %s command.", label),
		Success:     fmt.Sprintf("%s complete", label),
		Flags: []manifest.Flag{
			{Name: "message", Short: "m", Usage: "Message to print", Default: "Hello from " + label},
		},
		Actions: []map[string]any{
			{"name": "hello", "type": "shell", "command_line": `echo "$message"`},
		},
	}
}

func render(_ context.Context, opts *actionseq.Options) (any, error) {
	nm, _ := opts.Param(nameFlag).(string)
	id, _ := opts.Param(idFlag).(string)
	file, _ := opts.Param(fileParam).(string)

	m := Scaffold(nm, id)

	var (
		b   []byte
		err error
	)

	if filepath.Ext(file) == "."+formatHCL {
		b, err = manifest.EncodeHCL(m)
	} else {
		b, err = manifest.EncodeYAML(m)
	}

	if err != nil {
		return nil, err
	}

	if err := afero.WriteFile(steps.FS(opts), file, b, 0o644); err != nil {
		return nil, err
	}

	return file, nil
}
