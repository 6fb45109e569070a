// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package binder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/arcli/internal/color"
	"github.com/matt-FFFFFF/arcli/internal/commandregistry"
	"github.com/urfave/cli/v3"
)

var (
	// ErrInvalidCommand is returned when the first argument names no command.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrAmbiguousCommand is returned when the first argument is a prefix of several commands.
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

// Resolve checks the command named by args[1] and returns args with a unique prefix expanded
// to the full command name. Flags are never treated as commands. An unknown name prints an
// error line and the root help; an ambiguous prefix prints the candidates.
func Resolve(ctx context.Context, root *cli.Command, reg *commandregistry.Registry, args []string) ([]string, error) {
	if len(args) < 2 {
		return args, nil
	}

	arg := args[1]
	if strings.HasPrefix(arg, "-") || root.Command(arg) != nil {
		return args, nil
	}

	m := reg.Match(arg)

	switch m.Kind {
	case commandregistry.MatchExact, commandregistry.MatchFlag:
		return args, nil
	case commandregistry.MatchPrefix:
		out := slices.Clone(args)
		out[1] = m.Name()

		return out, nil
	case commandregistry.MatchAmbiguous:
		_, _ = fmt.Fprintln(errWriter(root), color.Colorize(fmt.Sprintf("Ambiguous command %q, did you mean one of: %s", arg, strings.Join(m.Names, ", ")), color.Error))
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousCommand, arg)
	default:
		_, _ = fmt.Fprintln(errWriter(root), color.Colorize(fmt.Sprintf("Invalid command: %s", arg), color.Error))
		_ = root.Run(ctx, []string{root.Name, "--help"})

		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, arg)
	}
}

func errWriter(root *cli.Command) io.Writer {
	if root.ErrWriter != nil {
		return root.ErrWriter
	}

	return os.Stderr
}
