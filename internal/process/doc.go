// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process spawns child processes for steps.
//
// A child inherits stdin. Its stdout and stderr are read through pipes so that each line can be
// forwarded to the progress indicator. The first termination signal of a kind is passed on to the
// child, the second kills it. A cancelled context kills the child as well.
// A non-zero exit status is reported as a *ExitError wrapping ErrProcessExit.
package process
