// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/constants"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/templates"
	"github.com/srl-labs/iosconfig/types"
)

func templateCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "manage saved request templates",
	}

	saveCmd := &cobra.Command{
		Use:   "save NAME",
		Short: "save the request built from the flags as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return templateSaveFn(cobraCmd, o, args[0])
		},
	}
	o.Request.addFlags(saveCmd.Flags())

	loadCmd := &cobra.Command{
		Use:   "load NAME",
		Short: "print a template as a request file",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: templateNameArg(o),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return templateLoadFn(cobraCmd, o, args[0])
		},
	}
	loadCmd.Flags().BoolVarP(&o.Template.Flat, "flat", "", false,
		"print the flat template fields instead of a request file")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list the saved templates",
		Args:    cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return templateListFn(cobraCmd, o)
		},
	}
	listCmd.Flags().StringVarP(&o.Template.Format, "format", "", o.Template.Format,
		fmt.Sprintf("output format; one of [%s, %s]", constants.FormatTable, constants.FormatPlain))

	deleteCmd := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "delete a template",
		Args:    cobra.ExactArgs(1),

		ValidArgsFunction: templateNameArg(o),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := templates.NewStore(o.Global.TemplateDir)
			if err != nil {
				return err
			}
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			log.Infof("template %q deleted", args[0])
			return nil
		},
	}

	c.AddCommand(saveCmd, loadCmd, listCmd, deleteCmd)

	return c, nil
}

func templateSaveFn(cobraCmd *cobra.Command, o *Options, name string) error {
	req, err := o.Request.build(cobraCmd.Flags(), o.Global.TemplateDir)
	if err != nil {
		return err
	}

	s, err := templates.NewStore(o.Global.TemplateDir)
	if err != nil {
		return err
	}

	if err := s.Save(name, req); err != nil {
		return err
	}

	p, _ := s.Path(name)
	log.Infof("template %q saved to %s", name, p)

	return nil
}

func templateLoadFn(cobraCmd *cobra.Command, o *Options, name string) error {
	s, err := templates.NewStore(o.Global.TemplateDir)
	if err != nil {
		return err
	}

	req, err := s.Load(name)
	if err != nil {
		return err
	}

	if o.Template.Flat {
		printFields(cobraCmd.OutOrStdout(), req)
		return nil
	}

	b, err := req.Marshal()
	if err != nil {
		return err
	}

	_, err = cobraCmd.OutOrStdout().Write(b)
	return err
}

func templateListFn(cobraCmd *cobra.Command, o *Options) error {
	s, err := templates.NewStore(o.Global.TemplateDir)
	if err != nil {
		return err
	}

	names, err := s.List()
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()

	switch o.Template.Format {
	case constants.FormatPlain:
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	case constants.FormatTable:
	default:
		return fmt.Errorf("%w: unknown format %q", clerrors.ErrIncorrectInput, o.Template.Format)
	}

	if len(names) == 0 {
		log.Infof("no templates found in %s", s.Dir())
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Name", "Hostname", "Modified"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	rows := make([][]string, 0, len(names))
	for i, n := range names {
		req, err := s.Load(n)
		if err != nil {
			return err
		}

		modified := ""
		p, _ := s.Path(n)
		if fi, err := os.Stat(p); err == nil {
			modified = humanize.Time(fi.ModTime())
		}

		rows = append(rows, []string{strconv.Itoa(i + 1), n, req.Identity.Hostname, modified})
	}

	table.AppendBulk(rows)
	table.Render()

	return nil
}

// printFields writes the set template fields as key: value lines in section order.
func printFields(w io.Writer, req *types.Request) {
	fields := req.Fields()

	for _, k := range types.FieldKeys() {
		if val, ok := fields[k]; ok {
			fmt.Fprintf(w, "%s: %s\n", k, val)
		}
	}
}
