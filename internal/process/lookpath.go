// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
)

const (
	goosWindows      = "windows"
	winSystemRootEnv = "SystemRoot"
	binSh            = "/bin/sh"
)

// ErrCommandNotFound is returned when an executable is not on PATH or the name is empty.
var ErrCommandNotFound = errors.New("command not found")

// LookPath finds an executable on PATH. Replaced in tests.
var LookPath = lookPath

func lookPath(name string) (string, error) {
	if name == "" {
		return "", ErrCommandNotFound
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		if isExecutable(name) {
			return name, nil
		}

		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	candidates := []string{name}
	if runtime.GOOS == goosWindows {
		candidates = []string{name + ".exe", name + ".cmd", name + ".bat", name}
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}

		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if isExecutable(p) {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}

	return runtime.GOOS == goosWindows || info.Mode()&0o111 != 0
}

// Shell returns a Command running line with the system shell.
func Shell(ctx context.Context, line string) *Command {
	if runtime.GOOS == goosWindows {
		root := os.Getenv(winSystemRootEnv)
		if root == "" {
			root = `C:\Windows`
		}

		return &Command{
			Path: filepath.Join(root, "System32", "cmd.exe"),
			Args: []string{"/C", line},
		}
	}

	sh := binSh
	if s := os.Getenv("SHELL"); s != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", s)
		sh = s
	}

	return &Command{
		Path: sh,
		Args: []string{"-c", line},
	}
}

// Exec returns a Command for name found on PATH.
func Exec(name string, args ...string) (*Command, error) {
	p, err := LookPath(name)
	if err != nil {
		return nil, err
	}

	return &Command{Path: p, Args: args}, nil
}
