// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery finds command manifests under the configured search paths and
// writes them into a command registry.
//
// Layers are loaded in precedence order, so a manifest in a later layer replaces one with
// the same key from an earlier layer. A file that cannot be decoded is logged and recorded
// in the loader's diagnostics; it never stops the remaining files from loading.
package discovery
