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

// Package walk lists a directory tree into a fixed snapshot. Callers mutate
// the tree only after the snapshot is taken.
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// PathEntry is one file or directory found by Walk.
type PathEntry struct {
	Path    string // absolute path
	RelPath string // root-relative, forward slashes
	IsDir   bool
	Ext     string // lowercase, including the dot
	Depth   int    // number of segments in RelPath
}

// Name returns the leaf name.
func (e PathEntry) Name() string {
	return filepath.Base(e.Path)
}

// Filter decides which entries are skipped entirely and which files take
// part in content rewriting.
type Filter struct {
	// IgnorePrefixes excludes root-relative paths equal to, or nested under,
	// a prefix. A prefix ending in "/" only matches below that directory.
	IgnorePrefixes []string
	// IgnoreGlobs excludes root-relative paths matching a doublestar pattern.
	IgnoreGlobs []string
	// Extensions selects files for content rewriting by name suffix. Empty
	// selects every file.
	Extensions []string
}

// Validate checks the ignore globs.
func (f Filter) Validate() error {
	for _, g := range f.IgnoreGlobs {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid ignore glob %q", g)
		}
	}
	return nil
}

// Ignored reports whether rel is excluded.
func (f Filter) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, prefix := range f.IgnorePrefixes {
		prefix = filepath.ToSlash(prefix)
		if prefix == "" {
			continue
		}
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(rel+"/", prefix) {
				return true
			}
			continue
		}
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	for _, g := range f.IgnoreGlobs {
		if matched, err := doublestar.Match(g, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// Included reports whether the file at rel takes part in content rewriting.
func (f Filter) Included(rel string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	name := strings.ToLower(filepath.Base(rel))
	for _, ext := range f.Extensions {
		if ext != "" && strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Walk lists everything below root that the filter does not ignore. Ignored
// directories are not descended into, symlinks are not followed, and the
// result is sorted by RelPath. The root itself is not included.
func Walk(ctx context.Context, root string, f Filter) ([]PathEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	var entries []PathEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		entry, err := newEntry(root, path, d.IsDir())
		if err != nil {
			return err
		}

		if f.Ignored(entry.RelPath) {
			logger.Trace().Str("path", entry.RelPath).Msg("ignored")
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Trace().Str("path", entry.RelPath).Msg("skipping symlink")
			return nil
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	logger.Debug().Str("root", root).Int("entries", len(entries)).Msg("walked tree")
	return entries, nil
}

// Subdirectories lists the immediate child directories of root, sorted by
// name.
func Subdirectories(root string) ([]PathEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", root, err)
	}

	var out []PathEntry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		entry, err := newEntry(root, filepath.Join(root, d.Name()), true)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Under returns the entries whose path is strictly below dir.
func Under(entries []PathEntry, dir string) []PathEntry {
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	var out []PathEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// SortDeepestFirst orders entries so every entry comes before its parent.
// Renaming in this order only ever changes a leaf whose parent path is still
// the original one.
func SortDeepestFirst(entries []PathEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth > entries[j].Depth
		}
		return entries[i].RelPath < entries[j].RelPath
	})
}

func newEntry(root, path string, isDir bool) (PathEntry, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return PathEntry{}, errors.Errorf("relative path for %s: %w", path, err)
	}
	rel = filepath.ToSlash(rel)
	entry := PathEntry{
		Path:    path,
		RelPath: rel,
		IsDir:   isDir,
		Depth:   strings.Count(rel, "/") + 1,
	}
	if !isDir {
		entry.Ext = strings.ToLower(filepath.Ext(path))
	}
	return entry, nil
}
