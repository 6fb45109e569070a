// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader wraps the output pipe of a child process. Every complete line is passed
// to a callback as it arrives, the last complete line is kept for error messages and the
// output is captured up to a size limit.
package teereader
