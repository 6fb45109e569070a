// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for arcli.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/arcli"
	"github.com/matt-FFFFFF/arcli/cmd/commander"
	"github.com/matt-FFFFFF/arcli/cmd/commands"
	configcmd "github.com/matt-FFFFFF/arcli/cmd/config"
	"github.com/matt-FFFFFF/arcli/cmd/project"
	"github.com/matt-FFFFFF/arcli/internal/binder"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/matt-FFFFFF/arcli/internal/config"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/discovery"
	"github.com/matt-FFFFFF/arcli/internal/module"
	"github.com/matt-FFFFFF/arcli/internal/props"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	// Register every step type used by manifests.
	_ "github.com/matt-FFFFFF/arcli/internal/allsteps"
)

// FS is the filesystem commands are discovered on and work against. Replaced in tests.
var FS afero.Fs = afero.NewOsFs()

// Env describes the invocation.
type Env struct {
	Cwd    string
	Root   string
	Home   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the environment of the current process.
func DefaultEnv() (Env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Env{}, err
	}

	root, err := props.RootDir()
	if err != nil {
		return Env{}, err
	}

	home, err := props.HomeDir()
	if err != nil {
		return Env{}, err
	}

	return Env{Cwd: cwd, Root: root, Home: home, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}, nil
}

// NewRootCmd returns the root command without any subcommands.
func NewRootCmd(env Env) *cli.Command {
	return &cli.Command{
		Name:      "arcli",
		Usage:     "Scaffold, install and manage Actinium and Reactium projects",
		Writer:    env.Stdout,
		ErrWriter: env.Stderr,
		Description: `arcli discovers its commands from the installation directory, the project
(.core/.cli/commands and .cli/commands) and ~/.arcli/commands. A command found in a later
location replaces one with the same name from an earlier location.`,
		Version:         fmt.Sprintf("%s (commit: %s)", arcli.Version, arcli.Commit),
		Copyright:       "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		HideHelpCommand: true,
	}
}

// App holds the state of one invocation.
type App struct {
	Env      Env
	Config   *config.Config
	Props    *props.Props
	Registry *commandregistry.Registry
	Loader   *discovery.Loader
	Layers   []searchpath.Layer
	Outcome  binder.Outcome
}

// Builtins returns the modules compiled into arcli.
func Builtins(reg *commandregistry.Registry, loader *discovery.Loader) ([]module.Module, error) {
	var mods []module.Module

	m, err := commands.Module(reg, loader.Diagnostics)
	if err != nil {
		return nil, err
	}

	mods = append(mods, m)

	cfgMods, err := configcmd.Modules()
	if err != nil {
		return nil, err
	}

	mods = append(mods, cfgMods...)

	m, err = commander.Module()
	if err != nil {
		return nil, err
	}

	mods = append(mods, m)

	projMods, err := project.Modules()
	if err != nil {
		return nil, err
	}

	return append(mods, projMods...), nil
}

// Prepare loads the configuration, registers the built-ins and runs discovery.
// Only the root layer is loaded when it can serve args; otherwise every layer is.
func Prepare(ctx context.Context, env Env, args []string) (*App, error) {
	cfg, err := config.Load(ctx, env.Home, env.Cwd)
	if err != nil {
		return nil, err
	}

	spCtx := searchpath.Context{Root: env.Root, Cwd: env.Cwd, Home: env.Home}

	app := &App{
		Env:      env,
		Config:   cfg,
		Props:    props.New(spCtx, cfg, args, props.WithFS(FS), props.WithStreams(env.Stdin, env.Stdout, env.Stderr)),
		Registry: commandregistry.New(),
		Loader:   discovery.New(FS, spCtx),
		Layers:   searchpath.Layered(cfg, config.Layers, spCtx),
	}

	builtins, err := Builtins(app.Registry, app.Loader)
	if err != nil {
		return nil, err
	}

	for _, m := range builtins {
		if _, err := app.Registry.Put(m); err != nil {
			return nil, err
		}
	}

	if err := app.Loader.LoadLayers(ctx, app.Registry, app.Layers[0]); err != nil {
		return nil, err
	}

	app.Outcome = binder.Classify(args, app.Registry, FS, app.Layers[1:])
	ctxlog.Debug(ctx, "startup", "outcome", app.Outcome.String(), "commands", app.Registry.Len())

	if app.Outcome != binder.Resolved {
		if err := app.Loader.LoadLayers(ctx, app.Registry, app.Layers[1:]...); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Run dispatches args and returns the process exit code.
func Run(ctx context.Context, env Env, args []string) int {
	app, err := Prepare(ctx, env, args)
	if err != nil {
		ctxlog.Error(ctx, "failed to start", "error", err)
		return 1
	}

	root := NewRootCmd(env)

	if err := binder.Attach(ctx, root, app.Registry, app.Props); err != nil {
		ctxlog.Error(ctx, "failed to attach commands", "error", err)
		return 1
	}

	args, err = binder.Resolve(ctx, root, app.Registry, args)
	if err != nil {
		ctxlog.Debug(ctx, "invalid invocation", "error", err)
		return 1
	}

	err = root.Run(ctx, args)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		return 1
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		return 1
	}

	ctxlog.Debug(ctx, "command completed successfully")

	return 0
}
