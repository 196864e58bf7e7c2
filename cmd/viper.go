// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/srl-labs/iosconfig/constants"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/utils"
)

var v *viper.Viper //nolint:gochecknoglobals

// repeatable flag types; a list in the config file sets them once per element.
var listFlagTypes = map[string]bool{ //nolint:gochecknoglobals
	"stringArray": true,
	"stringSlice": true,
	"vlan":        true,
}

// initViper binds every flag of the command tree to a viper key made of the
// command path and the flag name, e.g. "send.port" which is also read from
// IOSCONFIG_SEND_PORT. Flags declared on the root are bound by name only.
func initViper(root *cobra.Command) error {
	v = viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return walkCommands(root, func(c *cobra.Command) error {
		var err error

		c.LocalFlags().VisitAll(func(f *pflag.Flag) {
			if err != nil {
				return
			}
			if bErr := v.BindPFlag(flagKey(commandPath(c), f.Name), f); bErr != nil {
				err = fmt.Errorf("failed to bind flag %q of %q: %w", f.Name, c.CommandPath(), bErr)
			}
		})

		return err
	})
}

func walkCommands(c *cobra.Command, fn func(*cobra.Command) error) error {
	if err := fn(c); err != nil {
		return err
	}

	for _, sc := range c.Commands() {
		if err := walkCommands(sc, fn); err != nil {
			return err
		}
	}

	return nil
}

// commandPath returns the dotted path of c below the root, "" for the root.
func commandPath(c *cobra.Command) string {
	var parts []string
	for ; c != nil && c.HasParent(); c = c.Parent() {
		parts = append([]string{c.Name()}, parts...)
	}

	return strings.Join(parts, ".")
}

func flagKey(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// lookupKeys returns the viper keys a flag of c may be set with, most specific first.
// Inherited flags are also looked up under the path of every command between c and
// the command declaring them, so IOSCONFIG_EXEC_PORT applies to "exec ping" too.
func lookupKeys(c *cobra.Command, f *pflag.Flag) []string {
	var keys []string

	for cur := c; cur != nil; cur = cur.Parent() {
		keys = append(keys, flagKey(commandPath(cur), f.Name))

		if cur.LocalFlags().Lookup(f.Name) == f {
			break
		}
	}

	return keys
}

// updateOptionsFromViper sets the flags of c that were not given on the command
// line from the environment or the config file.
func updateOptionsFromViper(c *cobra.Command, _ *Options) error {
	var errs []string

	visit := func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		for _, key := range lookupKeys(c, f) {
			if !v.IsSet(key) {
				continue
			}

			if err := setFlag(f, key); err != nil {
				errs = append(errs, err.Error())
			}

			return
		}
	}

	c.LocalFlags().VisitAll(visit)
	c.InheritedFlags().VisitAll(visit)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", clerrors.ErrIncorrectInput, strings.Join(errs, "; "))
	}

	return nil
}

// setFlag applies the viper value of key to f. Lists are applied element by element
// to repeatable flags.
func setFlag(f *pflag.Flag, key string) error {
	values := []string{v.GetString(key)}

	if listFlagTypes[f.Value.Type()] {
		switch v.Get(key).(type) {
		case []any, []string:
			values = v.GetStringSlice(key)
		}
	}

	for _, val := range values {
		if val == "" {
			continue
		}

		if err := f.Value.Set(val); err != nil {
			return fmt.Errorf("%s=%q: %v", key, val, err)
		}
	}

	log.Tracef("flag --%s set from %s", f.Name, key)

	return nil
}

// readConfigFile merges the configuration file into viper. Its keys follow the
// command paths, e.g. "send.port" or "log-level". A missing default file is ignored.
func readConfigFile(path string) error {
	p, err := utils.ResolvePath(path)
	if err != nil {
		return err
	}

	if p == "" {
		return nil
	}

	if !utils.FileExists(p) {
		if path == constants.DefaultConfigFile {
			return nil
		}
		return fmt.Errorf("%w: %s", clerrors.ErrFileNotFound, p)
	}

	v.SetConfigFile(p)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p, err)
	}

	log.Debugf("using config file %s", p)

	return nil
}
