// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/iosgen"
	"github.com/srl-labs/iosconfig/transport"
	"github.com/srl-labs/iosconfig/types"
	"github.com/srl-labs/iosconfig/utils"
)

func generateCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "generate the IOS commands for a request",
		Long: "generate builds a request from a request file, a saved template and the request flags,\n" +
			"and prints the resulting IOS commands or writes them to a file.\n" +
			"Sections are emitted in this order: " + sectionList(),
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return generateFn(cobraCmd, o)
		},
	}

	o.Request.addFlags(c.Flags())

	c.Flags().StringVarP(&o.Generate.OutputFile, "output", "o", "",
		"write the commands to a file instead of stdout")
	c.Flags().BoolVarP(&o.Generate.Warnings, "warnings", "w", false,
		"print a table of the sections left out and why")

	_ = c.MarkFlagFilename(flagRequestFile, "yaml", "yml", "json")

	return c, nil
}

func generateFn(cobraCmd *cobra.Command, o *Options) error {
	req, err := o.Request.build(cobraCmd.Flags(), o.Global.TemplateDir)
	if err != nil {
		return err
	}

	lines, warnings, err := generateLines(req, o.Generate.Warnings)
	if err != nil {
		return err
	}

	if o.Generate.OutputFile != "" {
		p, err := utils.ResolvePath(o.Generate.OutputFile)
		if err != nil {
			return err
		}
		if err := utils.CreateFile(p, strings.Join(lines, "\n")); err != nil {
			return err
		}
		log.Infof("%d commands written to %s", len(lines), p)
	} else {
		err := transport.Send(cobraCmd.Context(), transport.NewWriterTransport(cobraCmd.OutOrStdout()),
			lines, transport.WithDelay(0))
		if err != nil {
			return err
		}
	}

	if o.Generate.Warnings {
		printWarnings(cobraCmd.ErrOrStderr(), warnings)
	}

	return nil
}

func sectionList() string {
	names := make([]string, 0, len(iosgen.Sections()))
	for _, s := range iosgen.Sections() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// generateLines runs the generator. When collect is set the warnings are
// returned instead of logged.
func generateLines(req *types.Request, collect bool) ([]string, []iosgen.Warning, error) {
	var rep iosgen.Reporter = iosgen.NewLogReporter(log.StandardLogger())

	c := &iosgen.Collector{}
	if collect {
		rep = c
	}

	lines, err := iosgen.Generate(req, iosgen.WithReporter(rep))
	if err != nil {
		return nil, nil, err
	}

	return lines, c.Warnings(), nil
}

func printWarnings(w io.Writer, warnings []iosgen.Warning) {
	if len(warnings) == 0 {
		log.Info("all sections were generated without warnings")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Warning"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	rows := make([][]string, 0, len(warnings))
	for _, wr := range warnings {
		rows = append(rows, []string{string(wr.Section), wr.Message})
	}

	table.AppendBulk(rows)
	table.Render()
}
