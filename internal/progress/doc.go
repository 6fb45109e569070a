// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the Indicator capability that generators report to.
// A job starts the indicator, steps report output and status lines through it,
// and the job finishes it with either Succeed or Fail.
package progress
