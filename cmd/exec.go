// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/device"
	clerrors "github.com/srl-labs/iosconfig/errors"
)

// consoleFunc runs an operation on an open console connection.
type consoleFunc func(ctx context.Context, conn device.Conn) (string, error)

func execCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "exec",
		Short: "run show commands on the device and print their output",
		Example: `iosconfig exec -p /dev/ttyUSB0 --cmd "show version" --cmd "show clock"
iosconfig exec --transport ssh --host 10.0.0.1 -u admin --password admin --cmd "show ip route"`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if len(o.Exec.Commands) == 0 {
				return fmt.Errorf("%w: provide at least one --cmd", clerrors.ErrIncorrectInput)
			}
			return execWith(cobraCmd, o, o.Exec.Commands,
				func(ctx context.Context, conn device.Conn) (string, error) {
					return device.Run(ctx, conn, o.Exec.Commands, o.Exec.Window)
				})
		},
	}

	o.Device.addFlags(c.PersistentFlags(), true)

	c.Flags().StringArrayVarP(&o.Exec.Commands, "cmd", "c", nil, "command to run, may be repeated")
	c.Flags().DurationVarP(&o.Exec.Window, "window", "", o.Exec.Window,
		"how long to collect console output after the last command")

	c.AddCommand(
		&cobra.Command{
			Use:   "interfaces",
			Short: "show the IP interface summary",
			Args:  cobra.NoArgs,
			RunE: func(cobraCmd *cobra.Command, _ []string) error {
				return execWith(cobraCmd, o, []string{"show ip interface brief"}, device.InterfaceBrief)
			},
		},
		&cobra.Command{
			Use:   "ping TARGET",
			Short: "ping a target from the device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cobraCmd *cobra.Command, args []string) error {
				return execWith(cobraCmd, o, []string{"ping " + args[0]},
					func(ctx context.Context, conn device.Conn) (string, error) {
						return device.Ping(ctx, conn, args[0])
					})
			},
		},
		&cobra.Command{
			Use:   "traceroute TARGET",
			Short: "trace the route from the device to a target",
			Args:  cobra.ExactArgs(1),
			RunE: func(cobraCmd *cobra.Command, args []string) error {
				return execWith(cobraCmd, o, []string{"traceroute " + args[0]},
					func(ctx context.Context, conn device.Conn) (string, error) {
						return device.Traceroute(ctx, conn, args[0])
					})
			},
		},
	)

	return c, nil
}

// execWith runs the commands over SSH, or runs f on the serial console.
func execWith(cobraCmd *cobra.Command, o *Options, commands []string, f consoleFunc) error {
	ctx := cobraCmd.Context()
	out := cobraCmd.OutOrStdout()

	switch o.Device.Transport {
	case transportSSH:
		if o.Device.Host == "" {
			return fmt.Errorf("%w: --host is required with the ssh transport", clerrors.ErrIncorrectInput)
		}

		tx := o.Device.sshTransport()
		if err := tx.Open(ctx); err != nil {
			return err
		}
		defer tx.Close()

		for _, c := range commands {
			res, err := tx.Command(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, strings.TrimRight(res, "\r\n"))
		}

		return nil

	case transportSerial:
		if o.Device.Port == "" {
			return fmt.Errorf("%w: use --port, see the ports command", clerrors.ErrNoPort)
		}

		tx := o.Device.serialTransport()
		if err := tx.Open(ctx); err != nil {
			return err
		}
		defer tx.Close()

		res, err := f(ctx, tx)
		if res != "" {
			fmt.Fprintln(out, strings.TrimRight(res, "\n"))
		}
		return err
	}

	return fmt.Errorf("%w: unknown transport %q", clerrors.ErrIncorrectInput, o.Device.Transport)
}
