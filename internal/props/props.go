// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package props holds the values and helpers shared by every command and every step of one invocation.
package props

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/config"
	"github.com/matt-FFFFFF/arcli/internal/process"
	"github.com/matt-FFFFFF/arcli/internal/searchpath"
	"github.com/spf13/afero"
)

// RootEnv overrides the installation root.
const RootEnv = "ARCLI_ROOT"

// ErrNoHome is returned when the home directory cannot be determined.
var ErrNoHome = errors.New("could not determine home directory")

// Props is shared by pointer for the whole invocation.
type Props struct {
	Cwd    string
	Root   string
	Home   string
	Config *config.Config
	Args   []string // Command line of the invocation, program name first.
	FS     afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Prompter answers Prompt calls. When nil a prompter is chosen from Stdin.
	Prompter Prompter
}

// Option configures New.
type Option func(*Props)

// WithFS sets the filesystem.
func WithFS(fs afero.Fs) Option {
	return func(p *Props) { p.FS = fs }
}

// WithStreams sets the standard streams.
func WithStreams(in io.Reader, out, errOut io.Writer) Option {
	return func(p *Props) {
		p.Stdin = in
		p.Stdout = out
		p.Stderr = errOut
	}
}

// WithPrompter sets the prompter.
func WithPrompter(pr Prompter) Option {
	return func(p *Props) { p.Prompter = pr }
}

// New creates Props for the given directories.
func New(ctx searchpath.Context, cfg *config.Config, args []string, opts ...Option) *Props {
	p := &Props{
		Cwd:    ctx.Cwd,
		Root:   ctx.Root,
		Home:   ctx.Home,
		Config: cfg,
		Args:   args,
		FS:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	for _, o := range opts {
		o(p)
	}

	if p.Config == nil {
		p.Config = config.Default()
	}

	return p
}

// Context returns the path tokens used by the search path resolver.
func (p *Props) Context() searchpath.Context {
	return searchpath.Context{Root: p.Root, Cwd: p.Cwd, Home: p.Home}
}

// Values returns the props exposed to step parameter expansion.
func (p *Props) Values() map[string]string {
	return map[string]string{
		"cwd":  p.Cwd,
		"root": p.Root,
		"home": p.Home,
	}
}

// Normalize resolves a leading ~ against Home and a relative path against Cwd.
func (p *Props) Normalize(path string) string {
	switch {
	case path == "~":
		path = p.Home
	case strings.HasPrefix(path, "~/"), strings.HasPrefix(path, `~\`):
		path = filepath.Join(p.Home, path[2:])
	case !filepath.IsAbs(path):
		path = filepath.Join(p.Cwd, path)
	}

	return filepath.Clean(path)
}

// Glob matches a doublestar pattern, normalized like Normalize, on FS.
func (p *Props) Glob(pattern string) ([]string, error) {
	return searchpath.Glob(p.FS, p.Normalize(pattern))
}

// Spawn runs an executable from PATH in Cwd with the invocation's output streams.
func (p *Props) Spawn(ctx context.Context, name string, args ...string) error {
	cmd, err := process.Exec(name, args...)
	if err != nil {
		return err
	}

	cmd.Dir = p.Cwd
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	_, err = cmd.Run(ctx)

	return err
}

// Prompt asks a question. An empty answer yields def.
func (p *Props) Prompt(question, def string) (string, error) {
	pr := p.Prompter
	if pr == nil {
		pr = DefaultPrompter(p.Stdin, p.Stdout)
	}

	ans, err := pr.Prompt(question, def)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(ans) == "" {
		return def, nil
	}

	return strings.TrimSpace(ans), nil
}

// RootDir returns the installation root: RootEnv if set, otherwise the directory of the executable.
func RootDir() (string, error) {
	if r := os.Getenv(RootEnv); r != "" {
		return filepath.Abs(r)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	h, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Join(ErrNoHome, err)
	}

	return h, nil
}
