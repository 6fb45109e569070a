// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package allsteps imports all step packages to ensure their registration.
package allsteps

import (
	// Import all step packages to trigger their init() functions.
	_ "github.com/matt-FFFFFF/arcli/internal/steps/copystep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/downloadstep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/execstep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/mkdirstep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/promptstep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/shellstep"
	_ "github.com/matt-FFFFFF/arcli/internal/steps/templatestep"
)
