// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry holds the command modules of one invocation.
//
// Top-level modules are keyed by name and subcommands by dotted id. Put overwrites
// an existing key, so loading layers from lowest to highest precedence leaves the
// highest layer's module in place.
package commandregistry
