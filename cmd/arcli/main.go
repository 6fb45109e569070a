// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the arcli command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/arcli/cmd"
	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/matt-FFFFFF/arcli/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.FromEnv())

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	env, err := cmd.DefaultEnv()
	if err != nil {
		ctxlog.Error(ctx, "cannot determine the environment", "error", err)
		cancel()
		os.Exit(1)
	}

	code := cmd.Run(ctx, env, os.Args)

	signalbroker.Stop(sigCh)
	cancel()
	os.Exit(code)
}
