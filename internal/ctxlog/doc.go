// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger through a context.Context.
//
// The default handler writes a compact, coloured line per record with the
// attributes rendered as JSON. The level is read once from ARCLI_LOG_LEVEL
// (the prefix follows the executable name).
package ctxlog
