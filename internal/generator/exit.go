// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package generator

import (
	"github.com/urfave/cli/v3"
)

// Exit maps a job error to the result of a command action:
// nil and cancellation exit 0, anything else exits 1 with the error message.
// The indicator has already shown the failure, so the message is not repeated.
func Exit(err error) error {
	if err == nil || IsCancelled(err) {
		return nil
	}

	return cli.Exit("", 1)
}
