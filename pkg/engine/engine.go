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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/retemplate/pkg/config"
	"github.com/walteh/retemplate/pkg/guid"
	"github.com/walteh/retemplate/pkg/log"
	"github.com/walteh/retemplate/pkg/rename"
	"github.com/walteh/retemplate/pkg/status"
	"github.com/walteh/retemplate/pkg/walk"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrAmbiguousTarget is returned when zero or several package
	// directories match the source tokens. Nothing is modified.
	ErrAmbiguousTarget = errors.Base("ambiguous rename target")
	// ErrRunInProgress is returned by Run while another Run on the same
	// engine has not finished.
	ErrRunInProgress = errors.Base("rename already in progress")
)

// 🔑 IdentifierRegenerator assigns fresh asset identifiers under the given
// paths and returns how many were replaced.
type IdentifierRegenerator interface {
	Regenerate(ctx context.Context, paths []string) (int, error)
}

// NopRegenerator regenerates nothing.
type NopRegenerator struct{}

func (NopRegenerator) Regenerate(ctx context.Context, paths []string) (int, error) {
	return 0, nil
}

var _ IdentifierRegenerator = (*guid.MetaRegenerator)(nil)

// 🔧 Options contains configuration for the engine
type Options struct {
	// Config is the loaded and validated run configuration
	Config *config.Config
	// Files performs every read, write and move. Defaults to a
	// status.Manager rooted at the project root.
	Files status.FileManager
	// Reporter records committed changes. Defaults to a new reporter.
	Reporter *status.Reporter
	// Regenerator is called when Config.RegenerateIdentifiers is set and
	// the run moves the target. Defaults to a guid.MetaRegenerator writing
	// through Files and scanning the whole project for references.
	Regenerator IdentifierRegenerator
	// Logger prints console lines. Defaults to a discarding logger.
	Logger *log.Logger
}

// 🎮 Engine locates, plans and applies one rename
type Engine struct {
	cfg      *config.Config
	planner  *rename.Planner
	files    status.FileManager
	reporter *status.Reporter
	regen    IdentifierRegenerator
	logger   *log.Logger
	running  *semaphore.Weighted
}

// 🏭 New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	planner, err := opts.Config.Planner()
	if err != nil {
		return nil, err
	}

	files := opts.Files
	if files == nil {
		files = status.NewManager(opts.Config.ProjectRoot)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.NewReporter(nil)
	}
	regen := opts.Regenerator
	if regen == nil {
		if opts.Config.RegenerateIdentifiers {
			regen = guid.NewMetaRegenerator(files, opts.Config.ProjectRoot, opts.Config.Filter())
		} else {
			regen = NopRegenerator{}
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Engine{
		cfg:      opts.Config,
		planner:  planner,
		files:    files,
		reporter: reporter,
		regen:    regen,
		logger:   logger,
		running:  semaphore.NewWeighted(1),
	}, nil
}

// Planner returns the planner built from the config.
func (e *Engine) Planner() *rename.Planner {
	return e.planner
}

// Reporter returns the reporter changes are tracked on.
func (e *Engine) Reporter() *status.Reporter {
	return e.reporter
}

// 🎯 Target is the package directory a run renames
type Target struct {
	Path    string // absolute path before the run
	NewPath string // absolute path after the run
	// AlreadyRenamed is set when the directory carries the destination
	// tokens instead of the source tokens.
	AlreadyRenamed bool
}

// Renamed reports whether the target directory itself moves.
func (t Target) Renamed() bool {
	return t.Path != t.NewPath
}

// 🔍 Locate finds the one package directory whose name contains every source
// token. When none does but exactly one contains every destination token, that
// directory is returned with AlreadyRenamed set.
func (e *Engine) Locate(ctx context.Context) (Target, error) {
	logger := zerolog.Ctx(ctx)
	root := e.cfg.PackagesRoot()

	dirs, err := walk.Subdirectories(root)
	if err != nil {
		return Target{}, errors.Errorf("listing packages: %w", err)
	}

	projectRoot, err := filepath.Abs(e.cfg.ProjectRoot)
	if err != nil {
		return Target{}, errors.Errorf("resolving project root: %w", err)
	}
	filter := e.cfg.Filter()

	var sources, destinations []walk.PathEntry
	for _, d := range dirs {
		if rel, err := filepath.Rel(projectRoot, d.Path); err == nil && filter.Ignored(filepath.ToSlash(rel)) {
			continue
		}
		switch {
		case e.planner.MatchesAll(d.Name()):
			sources = append(sources, d)
		case e.planner.MatchesAllDestinations(d.Name()):
			destinations = append(destinations, d)
		}
	}

	switch {
	case len(sources) == 1:
		target := Target{Path: sources[0].Path, NewPath: e.planner.Path(sources[0].Path)}
		target.AlreadyRenamed = !target.Renamed()
		logger.Debug().Str("target", target.Path).Str("new_target", target.NewPath).Msg("located package")
		return target, nil
	case len(sources) > 1:
		return Target{}, errors.Errorf("%d packages under %s match %s: %w", len(sources), root, names(sources), ErrAmbiguousTarget)
	case len(destinations) == 1:
		logger.Debug().Str("target", destinations[0].Path).Msg("package already renamed")
		return Target{Path: destinations[0].Path, NewPath: destinations[0].Path, AlreadyRenamed: true}, nil
	case len(destinations) > 1:
		return Target{}, errors.Errorf("%d renamed packages under %s: %s: %w", len(destinations), root, names(destinations), ErrAmbiguousTarget)
	default:
		return Target{}, errors.Errorf("no package under %s matches %s: %w", root, pairList(e.planner.Pairs()), ErrAmbiguousTarget)
	}
}

func names(entries []walk.PathEntry) string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return strings.Join(out, ", ")
}

func pairList(pairs []rename.RenamePair) string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = "[" + p.String() + "]"
	}
	return strings.Join(out, " ")
}
