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

// Package guid gives every asset under a set of directories a fresh
// identifier, so a renamed copy of a template does not share asset GUIDs
// with the template it came from.
package guid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/retemplate/pkg/status"
	"github.com/walteh/retemplate/pkg/text"
	"github.com/walteh/retemplate/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

var metaGUID = regexp.MustCompile(`(?m)^guid: ([0-9a-f]{32})\s*$`)

// DefaultReferenceExtensions are the text asset types that refer to other
// assets by GUID.
var DefaultReferenceExtensions = []string{
	".meta",
	".asmdef",
	".asmref",
	".asset",
	".prefab",
	".unity",
	".mat",
	".controller",
	".anim",
}

// MetaRegenerator rewrites the guid line of every .meta file under the
// regenerated paths and every reference to the old value under Root.
type MetaRegenerator struct {
	Files status.FileManager
	// Root is the tree scanned for references. Empty scans only the
	// regenerated paths.
	Root string
	// Ignore skips paths below Root. Only its ignore prefixes and globs are
	// used.
	Ignore walk.Filter
	// ReferenceExtensions selects files scanned for references. Nil uses
	// DefaultReferenceExtensions.
	ReferenceExtensions []string
	// NewID produces a fresh 32 character lowercase hex identifier. Nil uses
	// crypto/rand.
	NewID func() (string, error)
}

// NewMetaRegenerator creates a regenerator that writes through files and
// rewrites references anywhere under root that ignore does not skip.
func NewMetaRegenerator(files status.FileManager, root string, ignore walk.Filter) *MetaRegenerator {
	return &MetaRegenerator{Files: files, Root: root, Ignore: ignore}
}

// Regenerate walks each path, replaces every .meta GUID with a new one and
// updates references in the selected text assets under Root. It returns the
// number of identifiers replaced.
func (g *MetaRegenerator) Regenerate(ctx context.Context, paths []string) (int, error) {
	logger := zerolog.Ctx(ctx)

	newID := g.NewID
	if newID == nil {
		newID = randomID
	}
	exts := g.ReferenceExtensions
	if exts == nil {
		exts = DefaultReferenceExtensions
	}

	var metas []walk.PathEntry
	for _, p := range paths {
		entries, err := collect(ctx, p, walk.Filter{Extensions: []string{".meta"}})
		if err != nil {
			return 0, err
		}
		metas = append(metas, entries...)
	}

	mapping := map[string]string{}
	for _, f := range metas {
		content, err := g.Files.ReadFile(ctx, f.Path)
		if err != nil {
			return 0, errors.Errorf("reading %s: %w", f.Path, err)
		}
		for _, m := range metaGUID.FindAllSubmatch(content, -1) {
			old := string(m[1])
			if _, ok := mapping[old]; ok {
				continue
			}
			id, err := newID()
			if err != nil {
				return 0, errors.Errorf("generating identifier: %w", err)
			}
			mapping[old] = id
		}
	}
	if len(mapping) == 0 {
		logger.Debug().Msg("no identifiers to regenerate")
		return 0, nil
	}

	refs := walk.Filter{
		IgnorePrefixes: g.Ignore.IgnorePrefixes,
		IgnoreGlobs:    g.Ignore.IgnoreGlobs,
		Extensions:     exts,
	}
	var files []walk.PathEntry
	if g.Root != "" {
		entries, err := collect(ctx, g.Root, refs)
		if err != nil {
			return 0, err
		}
		files = entries
	} else {
		for _, p := range paths {
			entries, err := collect(ctx, p, walk.Filter{Extensions: exts})
			if err != nil {
				return 0, err
			}
			files = append(files, entries...)
		}
	}

	rules := rulesFor(mapping)
	replacer := text.NewSimpleTextReplacer()
	for _, f := range files {
		content, err := g.Files.ReadFile(ctx, f.Path)
		if err != nil {
			return 0, errors.Errorf("reading %s: %w", f.Path, err)
		}
		updated, n := replacer.ReplaceString(string(content), rules)
		if n == 0 {
			continue
		}
		if err := g.Files.WriteFileAtomic(ctx, f.Path, []byte(updated)); err != nil {
			return 0, errors.Errorf("writing %s: %w", f.Path, err)
		}
		logger.Debug().Str("path", f.Path).Int("replacements", n).Msg("updated identifiers")
	}

	return len(mapping), nil
}

// collect walks root and keeps the files f includes.
func collect(ctx context.Context, root string, f walk.Filter) ([]walk.PathEntry, error) {
	entries, err := walk.Walk(ctx, root, f)
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}
	var files []walk.PathEntry
	for _, e := range entries {
		if !e.IsDir && f.Included(e.RelPath) {
			files = append(files, e)
		}
	}
	return files, nil
}

// rulesFor orders the mapping so runs are reproducible for a given input.
func rulesFor(mapping map[string]string) []text.ReplacementRule {
	olds := make([]string, 0, len(mapping))
	for old := range mapping {
		olds = append(olds, old)
	}
	sort.Strings(olds)

	rules := make([]text.ReplacementRule, len(olds))
	for i, old := range olds {
		rules[i] = text.ReplacementRule{FromText: old, ToText: mapping[old]}
	}
	return rules
}

func randomID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
