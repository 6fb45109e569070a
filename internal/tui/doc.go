// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides the terminal spinner used as the progress indicator when stdout is a terminal.
// Subprocess output reported while the spinner runs is printed above it, the spinner line itself
// shows the job title and the step currently running.
package tui
