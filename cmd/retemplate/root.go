// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retemplate/cmd/retemplate/commands"
	"github.com/walteh/retemplate/cmd/retemplate/opts"
	"github.com/walteh/retemplate/pkg/config"
	"github.com/walteh/retemplate/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	overrides  opts.Overrides
}

// newRootCmd builds the command tree. Options are filled in before any
// subcommand runs.
func newRootCmd(stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "retemplate",
		Short: "Rename a project created from a package template",
		Long: `retemplate renames the company and project tokens of a package template:
the package folder, the files inside it, and every mention in the project's
text files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			cmd.SetContext(ctx)
			return newRootOpts(ctx, cmd, flags, rootOpts)
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewRenameCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// newRootOpts loads the config and fills in the shared options
func newRootOpts(ctx context.Context, cmd *cobra.Command, flags *rootFlags, into *opts.RootOpts) error {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadOrDefault(ctx, flags.configFile, explicit)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if err := flags.overrides.Apply(cfg); err != nil {
		return errors.Errorf("invalid options: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration ready")

	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	into.Config = cfg
	into.UserLogger = opts.NewUserLogger(ctx)
	into.Console = log.New(cmd.OutOrStdout(), level)
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", config.DefaultConfigFile, "config file path")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&flags.overrides.Company, "company", "", "company token to replace (default from config)")
	pf.StringVar(&flags.overrides.Project, "project", "", "project token to replace (default from config)")
	pf.StringVar(&flags.overrides.ToCompany, "to-company", "", "new company name")
	pf.StringVar(&flags.overrides.ToProject, "to-project", "", "new project name")
	pf.StringVar(&flags.overrides.Root, "root", "", "project root (default from config)")
	pf.BoolVar(&flags.overrides.RegenerateIDs, "regenerate-ids", false, "give every asset under the renamed package a new identifier")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
