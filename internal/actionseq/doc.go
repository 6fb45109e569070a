// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package actionseq runs an ordered list of named steps against a shared Options value.
//
// Steps run one at a time in slice order. Each step sees the mutations made by the
// steps before it. The first failing step stops the sequence and its error is returned
// unchanged; partial results are discarded. The executor never logs and never touches
// the progress indicator, that is the job of the caller.
package actionseq
