// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/constants"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/transport"
)

// listPorts is replaced in tests.
var listPorts = transport.ListPorts //nolint:gochecknoglobals

func portsCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "ports",
		Short: "list the serial ports of this host",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			ports, err := listPorts()
			if err != nil {
				return err
			}
			return printPorts(cobraCmd.OutOrStdout(), ports, o.Ports.Format)
		},
	}

	c.Flags().StringVarP(&o.Ports.Format, "format", "", o.Ports.Format,
		fmt.Sprintf("output format; one of [%s, %s]", constants.FormatTable, constants.FormatJSON))

	return c, nil
}

func printPorts(w io.Writer, ports []transport.PortInfo, format string) error {
	switch format {
	case constants.FormatJSON:
		b, err := json.MarshalIndent(ports, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case constants.FormatTable:
	default:
		return fmt.Errorf("%w: unknown format %q", clerrors.ErrIncorrectInput, format)
	}

	if len(ports) == 0 {
		log.Info("no serial ports found")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Port", "USB", "VID:PID", "Serial", "Product"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		id := ""
		if p.VID != "" || p.PID != "" {
			id = p.VID + ":" + p.PID
		}
		rows = append(rows, []string{p.Name, strconv.FormatBool(p.USB), id, p.Serial, p.Product})
	}

	table.AppendBulk(rows)
	table.Render()

	return nil
}
