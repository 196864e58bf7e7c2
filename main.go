// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/srl-labs/iosconfig/cmd"
)

func main() {
	ctx, cancel := cmd.SignalHandledContext()

	rootCmd, err := cmd.Entrypoint()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}

	err = rootCmd.ExecuteContext(ctx)

	// ensure cancel is *always* called (os.Exit bypasses)
	cancel()

	if err != nil {
		os.Exit(1)
	}
}
