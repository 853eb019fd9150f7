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

package engine

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/retemplate/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// 📝 ContentEdit is a file whose text changes
type ContentEdit struct {
	Path         string // absolute
	RelPath      string // project-relative, forward slashes
	Original     []byte
	Modified     []byte
	Replacements int
}

// 🚚 Move renames one file or directory. Only the leaf differs between From
// and To.
type Move struct {
	From  string
	To    string
	IsDir bool
}

// 📋 Plan is everything a run will do, computed before anything is touched
type Plan struct {
	Root   string // absolute project root
	Target Target
	Edits  []ContentEdit
	// Moves are ordered deepest first and end with the target directory.
	Moves []Move
	// Regenerate is set when identifiers are regenerated after the moves. It
	// is only set when the target itself moves.
	Regenerate bool
}

// Empty reports whether applying the plan would change nothing.
func (p *Plan) Empty() bool {
	return len(p.Edits) == 0 && len(p.Moves) == 0 && !p.Regenerate
}

// 🗺️ Plan locates the target and computes every content edit and move. It
// reads the tree but never modifies it.
func (e *Engine) Plan(ctx context.Context) (*Plan, error) {
	logger := zerolog.Ctx(ctx)

	target, err := e.Locate(ctx)
	if err != nil {
		return nil, err
	}

	filter := e.cfg.Filter()
	entries, err := walk.Walk(ctx, e.cfg.ProjectRoot, filter)
	if err != nil {
		return nil, errors.Errorf("walking project: %w", err)
	}

	root, err := filepath.Abs(e.cfg.ProjectRoot)
	if err != nil {
		return nil, errors.Errorf("resolving project root: %w", err)
	}
	plan := &Plan{Root: root, Target: target}

	for _, entry := range entries {
		if entry.IsDir || !filter.Included(entry.RelPath) {
			continue
		}
		original, err := e.files.ReadFile(ctx, entry.Path)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", entry.RelPath, err)
		}
		res, err := e.planner.Content(ctx, entry.RelPath, original)
		if err != nil {
			return nil, errors.Errorf("rewriting %s: %w", entry.RelPath, err)
		}
		if !res.WasModified || bytes.Equal(res.ModifiedContent, original) {
			continue
		}
		plan.Edits = append(plan.Edits, ContentEdit{
			Path:         entry.Path,
			RelPath:      entry.RelPath,
			Original:     original,
			Modified:     res.ModifiedContent,
			Replacements: res.ReplacementCount,
		})
	}

	under := walk.Under(entries, target.Path)
	walk.SortDeepestFirst(under)
	for _, entry := range under {
		to := e.planner.Path(entry.Path)
		if to == entry.Path {
			continue
		}
		plan.Moves = append(plan.Moves, Move{From: entry.Path, To: to, IsDir: entry.IsDir})
	}
	if target.Renamed() {
		plan.Moves = append(plan.Moves, Move{From: target.Path, To: target.NewPath, IsDir: true})
		plan.Regenerate = e.cfg.RegenerateIdentifiers
	}

	logger.Debug().
		Str("target", target.Path).
		Int("edits", len(plan.Edits)).
		Int("moves", len(plan.Moves)).
		Bool("regenerate", plan.Regenerate).
		Msg("planned rename")

	return plan, nil
}
