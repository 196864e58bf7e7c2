// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/srl-labs/iosconfig/templates"
)

func completionCmd(_ *Options) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "generate completion script",
		Long: `To load completions:

Bash:

  $ source <(iosconfig completion bash)

  # To load completions for each session, execute once:
  $ iosconfig completion bash > /etc/bash_completion.d/iosconfig

Zsh:

  $ iosconfig completion zsh > "${fpath[1]}/_iosconfig"

  # You will need to start a new shell for this setup to take effect.

fish:

  $ iosconfig completion fish > ~/.config/fish/completions/iosconfig.fish

PowerShell:

  PS> iosconfig completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			out := cobraCmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return cobraCmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cobraCmd.Root().GenZshCompletion(out)
			case "fish":
				return cobraCmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cobraCmd.Root().GenPowerShellCompletionWithDesc(out)
			}

			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}

	return c, nil
}

// templateNames completes the names of the saved templates.
func templateNames(o *Options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		s, err := templates.NewStore(o.Global.TemplateDir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		names, err := s.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

// templateNameArg completes the first positional argument with a template name.
func templateNameArg(o *Options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	complete := templateNames(o)

	return func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return complete(c, args, toComplete)
	}
}

// portNames completes the serial ports of this host.
func portNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	ports, err := listPorts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(ports))
	for _, p := range ports {
		desc := p.Product
		if desc == "" && p.USB {
			desc = "USB"
		}

		if desc != "" {
			names = append(names, p.Name+"\t"+desc)
			continue
		}

		names = append(names, p.Name)
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions walks the command tree and attaches the dynamic completions
// to the template and port flags declared on each command.
func registerCompletions(c *cobra.Command, o *Options) {
	attach := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			switch f.Name {
			case flagTemplate:
				_ = c.RegisterFlagCompletionFunc(f.Name, templateNames(o))
			case "port":
				_ = c.RegisterFlagCompletionFunc(f.Name, portNames)
			}
		})
	}

	attach(c.LocalNonPersistentFlags())
	attach(c.PersistentFlags())

	for _, sc := range c.Commands() {
		registerCompletions(sc, o)
	}
}
