// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/device"
	clerrors "github.com/srl-labs/iosconfig/errors"
)

func consoleCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:     "console",
		Aliases: []string{"term"},
		Short:   "open an interactive terminal on the serial port",
		Args:    cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if o.Device.Port == "" {
				return fmt.Errorf("%w: use --port, see the ports command", clerrors.ErrNoPort)
			}

			tx := o.Device.serialTransport()
			tx.SettleDelay = 0

			ctx := cobraCmd.Context()
			if err := tx.Open(ctx); err != nil {
				return err
			}
			defer tx.Close()

			fmt.Fprintf(cobraCmd.ErrOrStderr(), "connected to %s at %d baud, press Ctrl-] to exit\r\n",
				o.Device.Port, o.Device.BaudRate)

			return device.Console(ctx, tx, os.Stdin, cobraCmd.OutOrStdout())
		},
	}

	o.Device.addFlags(c.Flags(), false)

	return c, nil
}
