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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/retemplate/cmd/retemplate/opts"
	"github.com/walteh/retemplate/pkg/engine"
	"github.com/walteh/retemplate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRenameCmd creates a new rename command
func NewRenameCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename the template package and its contents",
		Long: `Rename finds the package whose name carries the company and project
tokens and renames it. It will:
1. Rewrite the tokens in every included text file of the project
2. Rename files and folders inside the package
3. Rename the package folder itself
4. Optionally give every asset a new identifier`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reporter := status.NewReporter(status.NewConsoleFileFormatter())
			eng, err := engine.New(engine.Options{
				Config:   opts.Config,
				Reporter: reporter,
				Logger:   opts.Console,
			})
			if err != nil {
				return errors.Errorf("creating engine: %w", err)
			}

			result, err := eng.Run(ctx)
			if err != nil {
				if result != nil {
					opts.UserLogger.LogStateChange("Rename stopped partway; completed steps were kept")
					opts.UserLogger.LogSummary(reporter.Changes())
				}
				return errors.Errorf("renaming: %w", err)
			}

			if result.Target.AlreadyRenamed && result.Changes() == 0 {
				opts.UserLogger.LogStateChange("Package is already renamed")
			}
			opts.UserLogger.LogSummary(reporter.Changes())
			return nil
		},
	}

	return cmd
}
