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
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/retemplate/pkg/log"
	"github.com/walteh/retemplate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result is what a run actually committed. After a failure it holds the
// steps that completed before it.
type Result struct {
	Target      Target
	Rewritten   []ContentEdit
	Moved       []Move
	Regenerated int
}

// Changes is the number of writes and moves performed.
func (r *Result) Changes() int {
	return len(r.Rewritten) + len(r.Moved)
}

// 🏃 Run plans and applies one rename. A second call while one is still in
// flight fails with ErrRunInProgress.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if !e.running.TryAcquire(1) {
		return nil, ErrRunInProgress
	}
	defer e.running.Release(1)

	plan, err := e.Plan(ctx)
	if err != nil {
		return nil, errors.Errorf("planning: %w", err)
	}
	return e.Apply(ctx, plan)
}

// ⚡ Apply writes content edits, then performs moves in plan order, then
// regenerates identifiers when the plan asks for it. It stops at the first
// failure.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	result := &Result{Target: plan.Target}

	e.logger.StartRun(ctx, log.RunOperation{
		Root:      plan.Root,
		Target:    filepath.Base(plan.Target.Path),
		NewTarget: filepath.Base(plan.Target.NewPath),
	})
	defer e.logger.EndRun(ctx)

	for _, edit := range plan.Edits {
		if err := ctx.Err(); err != nil {
			return result, errors.Errorf("rewriting content: %w", err)
		}
		if err := e.files.WriteFileAtomic(ctx, edit.Path, edit.Modified); err != nil {
			e.logger.LogPathOperation(ctx, log.PathOperation{Path: edit.RelPath, Kind: status.ContentRewritten.String(), Failed: true})
			return result, errors.Errorf("rewriting %s: %w", edit.RelPath, err)
		}
		result.Rewritten = append(result.Rewritten, edit)
		e.reporter.Track(ctx, status.Change{Kind: status.ContentRewritten, Path: edit.Path, Replacements: edit.Replacements})
		e.logger.LogPathOperation(ctx, log.PathOperation{Path: edit.RelPath, Kind: status.ContentRewritten.String(), Replacements: edit.Replacements})
	}

	for _, mv := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return result, errors.Errorf("moving paths: %w", err)
		}
		kind := status.FileMoved
		if mv.IsDir {
			kind = status.DirectoryMoved
		}
		rel := relTo(plan.Root, mv.From)
		if err := e.files.Move(ctx, mv.From, mv.To); err != nil {
			e.logger.LogPathOperation(ctx, log.PathOperation{Path: rel, NewPath: relTo(plan.Root, mv.To), Kind: kind.String(), Failed: true})
			return result, errors.Errorf("moving %s: %w", rel, err)
		}
		result.Moved = append(result.Moved, mv)
		e.reporter.Track(ctx, status.Change{Kind: kind, Path: mv.From, NewPath: mv.To})
		e.logger.LogPathOperation(ctx, log.PathOperation{Path: rel, NewPath: relTo(plan.Root, mv.To), Kind: kind.String()})
	}

	if plan.Regenerate {
		n, err := e.regen.Regenerate(ctx, []string{plan.Target.NewPath})
		if err != nil {
			return result, errors.Errorf("regenerating identifiers: %w", err)
		}
		result.Regenerated = n
		e.reporter.Track(ctx, status.Change{Kind: status.IdentifiersRegenerated, Path: plan.Target.NewPath, Replacements: n})
		e.logger.LogPathOperation(ctx, log.PathOperation{Path: relTo(plan.Root, plan.Target.NewPath), Kind: status.IdentifiersRegenerated.String(), Replacements: n})
	}

	logger.Info().
		Int("rewritten", len(result.Rewritten)).
		Int("moved", len(result.Moved)).
		Int("regenerated", result.Regenerated).
		Msg("rename applied")

	return result, nil
}

func relTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
