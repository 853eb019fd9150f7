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
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/retemplate/cmd/retemplate/opts"
	"github.com/walteh/retemplate/pkg/diff"
	"github.com/walteh/retemplate/pkg/engine"
	"github.com/walteh/retemplate/pkg/log"
	"github.com/walteh/retemplate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	var showDiff bool
	var contextLines int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what rename would change without changing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			eng, err := engine.New(engine.Options{
				Config: opts.Config,
				Logger: opts.Console,
			})
			if err != nil {
				return errors.Errorf("creating engine: %w", err)
			}

			plan, err := eng.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning: %w", err)
			}

			if plan.Empty() {
				opts.UserLogger.LogStateChange("Nothing to rename")
				return nil
			}

			var planned []status.Change
			for _, edit := range plan.Edits {
				opts.Console.LogPathOperation(ctx, log.PathOperation{
					Path:         edit.RelPath,
					Kind:         status.ContentRewritten.String(),
					Replacements: edit.Replacements,
					Planned:      true,
				})
				planned = append(planned, status.Change{Kind: status.ContentRewritten, Path: edit.Path, Replacements: edit.Replacements})
				if showDiff {
					fmt.Fprint(out, diff.Unified(edit.RelPath, edit.RelPath, edit.Original, edit.Modified, contextLines))
				}
			}

			for _, mv := range plan.Moves {
				kind := status.FileMoved
				if mv.IsDir {
					kind = status.DirectoryMoved
				}
				from, to := rel(plan.Root, mv.From), rel(plan.Root, mv.To)
				opts.Console.LogPathOperation(ctx, log.PathOperation{
					Path:    from,
					NewPath: to,
					Kind:    kind.String(),
					Planned: true,
				})
				planned = append(planned, status.Change{Kind: kind, Path: mv.From, NewPath: mv.To})
				if showDiff {
					fmt.Fprintf(out, "%s %s\n", color.New(color.Faint).Sprint("rename"), inline(filepath.Base(mv.From), filepath.Base(mv.To)))
				}
			}

			if plan.Regenerate {
				opts.Console.LogPathOperation(ctx, log.PathOperation{
					Path:    rel(plan.Root, plan.Target.NewPath),
					Kind:    status.IdentifiersRegenerated.String(),
					Planned: true,
				})
				planned = append(planned, status.Change{Kind: status.IdentifiersRegenerated, Path: plan.Target.NewPath})
			}

			opts.UserLogger.LogSummary(planned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of every rewrite and each rename")
	cmd.Flags().IntVar(&contextLines, "context", 3, "lines of context in diffs")

	return cmd
}

func inline(a, b string) string {
	if color.NoColor {
		return diff.InlinePlain(a, b)
	}
	return diff.Inline(a, b)
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}
