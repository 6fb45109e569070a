// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package steps provides what every manifest step type shares: the base definition,
// when/unless guards, run time parameter expansion and output forwarding.
package steps
