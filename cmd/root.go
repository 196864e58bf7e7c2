// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srl-labs/iosconfig/cmd/version"
	"github.com/srl-labs/iosconfig/constants"
)

// Entrypoint returns the root command with all subcommands attached.
func Entrypoint() (*cobra.Command, error) {
	o := GetOptions()

	c := &cobra.Command{
		Use:   constants.AppName,
		Short: "generate Cisco IOS configurations and push them over a console cable or SSH",
		PersistentPreRunE: func(cobraCmd *cobra.Command, _ []string) error {
			return preRunFn(cobraCmd, o)
		},
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	c.PersistentFlags().CountVarP(&o.Global.DebugCount, "debug", "d", "enable debug mode")
	c.PersistentFlags().StringVarP(&o.Global.LogLevel, "log-level", "", o.Global.LogLevel,
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	c.PersistentFlags().StringVarP(&o.Global.ConfigFile, "config", "", o.Global.ConfigFile,
		"path to the configuration file")
	c.PersistentFlags().StringVarP(&o.Global.TemplateDir, "template-dir", "", o.Global.TemplateDir,
		"directory holding the saved templates")

	subCmds := []func(*Options) (*cobra.Command, error){
		generateCmd,
		sendCmd,
		templateCmd,
		portsCmd,
		backupCmd,
		execCmd,
		consoleCmd,
		completionCmd,
	}

	for _, f := range subCmds {
		sc, err := f(o)
		if err != nil {
			return nil, err
		}
		c.AddCommand(sc)
	}

	c.AddCommand(version.VersionCmd)

	registerCompletions(c, o)

	if err := initViper(c); err != nil {
		return nil, err
	}

	return c, nil
}

func preRunFn(cobraCmd *cobra.Command, o *Options) error {
	if err := readConfigFile(o.Global.ConfigFile); err != nil {
		return err
	}

	if err := updateOptionsFromViper(cobraCmd, o); err != nil {
		return err
	}

	// setting log level
	switch {
	case o.Global.DebugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(o.Global.LogLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// setting output to stderr, so that the generated commands can be piped
	log.SetOutput(os.Stderr)

	return nil
}
