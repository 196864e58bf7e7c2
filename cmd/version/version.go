// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package version

import (
	"fmt"

	gover "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

// Version variables set at build time (e.g., with -ldflags).
var (
	Version = "0.0.0"
	commit  = "none"
	date    = "unknown"
)

const repoUrl = "https://github.com/srl-labs/iosconfig"

var short bool

func init() {
	VersionCmd.Flags().BoolVarP(&short, "short", "s", false, "print the version number only")
}

// VersionCmd defines the version command.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show iosconfig version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		if short {
			fmt.Fprintln(out, Version)
			return nil
		}

		fmt.Fprintf(out, "    version: %s\n", Version)
		fmt.Fprintf(out, "     series: %s\n", releaseSeries(Version))
		fmt.Fprintf(out, "     commit: %s\n", commit)
		fmt.Fprintf(out, "       date: %s\n", date)
		fmt.Fprintf(out, "     source: %s\n", repoUrl)
		return nil
	},
}

// releaseSeries returns the major.minor series of a version,
// e.g., for 0.15.1 => 0.15.
// Versions that do not parse are returned as is.
func releaseSeries(ver string) string {
	v, err := gover.NewVersion(ver)
	if err != nil {
		return ver
	}
	segments := v.Segments()

	return fmt.Sprintf("%d.%d", segments[0], segments[1])
}
