// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/device"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/utils"
)

func backupCmd(o *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "backup",
		Short: "save the running configuration of the device on the serial port",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return backupFn(cobraCmd, o)
		},
	}

	o.Device.addFlags(c.Flags(), false)

	c.Flags().StringVarP(&o.Backup.OutputFile, "output", "o", "",
		"file to save the configuration to, running-config-<timestamp>.txt by default")

	return c, nil
}

func backupFilename(now time.Time) string {
	return fmt.Sprintf("running-config-%s.txt", now.Format("20060102-150405"))
}

func backupFn(cobraCmd *cobra.Command, o *Options) error {
	if o.Device.Port == "" {
		return fmt.Errorf("%w: use --port, see the ports command", clerrors.ErrNoPort)
	}

	path := o.Backup.OutputFile
	if path == "" {
		path = backupFilename(time.Now())
	}

	path, err := utils.ResolvePath(path)
	if err != nil {
		return err
	}

	tx := o.Device.serialTransport()

	ctx := cobraCmd.Context()
	if err := tx.Open(ctx); err != nil {
		return err
	}
	defer tx.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Infof("reading the running configuration from %s", o.Device.Port)

	n, err := device.Backup(ctx, tx, f)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	log.Infof("saved %s of configuration to %s", humanize.Bytes(uint64(n)), path)

	return nil
}
