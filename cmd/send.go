// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/transport"
)

func sendCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "send",
		Short: "generate the IOS commands and send them to a device",
		Long: "send generates the commands like generate does and types them one line at a time\n" +
			"into the device console over a serial port, or into an SSH session",
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return sendFn(cobraCmd, o)
		},
	}

	o.Request.addFlags(c.Flags())
	o.Device.addFlags(c.Flags(), true)

	c.Flags().DurationVarP(&o.Send.Delay, "delay", "", o.Send.Delay, "pause after each line")
	c.Flags().BoolVarP(&o.Send.DryRun, "dry-run", "", false,
		"print the lines with the configured pacing instead of sending them")

	return c, nil
}

// addFlags registers the connection flags. SSH flags are only added for
// commands able to work over SSH.
func (d *DeviceOptions) addFlags(fs *pflag.FlagSet, ssh bool) {
	fs.StringVarP(&d.Port, "port", "p", "", "serial port, e.g. /dev/ttyUSB0 or COM3")
	fs.IntVarP(&d.BaudRate, "baud", "b", d.BaudRate, "serial port baud rate")

	if !ssh {
		return
	}

	fs.StringVarP(&d.Transport, "transport", "", d.Transport,
		fmt.Sprintf("connection to the device; one of [%s, %s]", transportSerial, transportSSH))
	fs.StringVarP(&d.Host, "host", "", "", "SSH address of the device")
	fs.IntVarP(&d.SSHPort, "ssh-port", "", d.SSHPort, "SSH port of the device")
	fs.StringVarP(&d.Username, "username", "u", "", "SSH username")
	fs.StringVarP(&d.Password, "password", "", "", "SSH password")
	fs.StringVarP(&d.Secondary, "secondary", "", "", "enable password used by the SSH session")
}

// lineTransport returns the transport selected by the options.
func (d *DeviceOptions) lineTransport() (transport.Transport, string, error) {
	switch d.Transport {
	case transportSerial:
		if d.Port == "" {
			return nil, "", fmt.Errorf("%w: use --port, see the ports command", clerrors.ErrNoPort)
		}
		return d.serialTransport(), d.Port, nil
	case transportSSH:
		if d.Host == "" {
			return nil, "", fmt.Errorf("%w: --host is required with the ssh transport", clerrors.ErrIncorrectInput)
		}
		return d.sshTransport(), d.Host, nil
	}

	return nil, "", fmt.Errorf("%w: unknown transport %q", clerrors.ErrIncorrectInput, d.Transport)
}

func sendFn(cobraCmd *cobra.Command, o *Options) error {
	req, err := o.Request.build(cobraCmd.Flags(), o.Global.TemplateDir)
	if err != nil {
		return err
	}

	lines, _, err := generateLines(req, false)
	if err != nil {
		return err
	}

	var (
		tx     transport.Transport
		target = "stdout"
	)

	if o.Send.DryRun {
		tx = transport.NewWriterTransport(cobraCmd.OutOrStdout())
	} else {
		tx, target, err = o.Device.lineTransport()
		if err != nil {
			return err
		}
	}

	log.Infof("sending %d lines to %s", len(lines), target)

	start := time.Now()
	errCh := transport.SendAsync(cobraCmd.Context(), tx, lines,
		transport.WithDelay(o.Send.Delay),
		transport.WithProgress(progressPrinter(cobraCmd.ErrOrStderr(), o.Send.DryRun)),
	)

	if err := <-errCh; err != nil {
		return fmt.Errorf("sending to %s failed: %w", target, err)
	}

	log.Infof("configuration sent to %s in %s", target, time.Since(start).Round(time.Millisecond))

	return nil
}

// progressPrinter returns a progress callback drawing a single status line on w.
func progressPrinter(w io.Writer, quiet bool) func(sent, total int) {
	if quiet {
		return nil
	}

	return func(sent, total int) {
		fmt.Fprintf(w, "\rsent %d/%d lines (%d%%)", sent, total, sent*100/total)
		if sent == total {
			fmt.Fprintln(w)
		}
	}
}
