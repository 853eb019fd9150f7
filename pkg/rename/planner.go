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

// Package rename computes what a token rename does to leaf names, paths and
// file contents. Nothing in here touches the filesystem.
package rename

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/walteh/retemplate/pkg/text"
	"github.com/walteh/retemplate/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 🔄 RenamePair is one token to replace, e.g. the company or project name.
type RenamePair struct {
	Source      string `json:"source" yaml:"source" hcl:"source"`
	Destination string `json:"destination" yaml:"destination" hcl:"destination"`
	// FileFilterGlob limits content rewriting for this pair to project
	// relative paths matching a doublestar pattern. Path renames ignore it.
	FileFilterGlob string `json:"file_filter_glob,omitempty" yaml:"file_filter_glob,omitempty" hcl:"file_filter_glob,optional"`
}

// Validate checks both sides are non-empty.
func (p RenamePair) Validate() error {
	if p.Source == "" {
		return errors.Errorf("source is required")
	}
	if strings.TrimSpace(p.Destination) == "" {
		return errors.Errorf("destination for %q is required", p.Source)
	}
	return nil
}

func (p RenamePair) String() string {
	return p.Source + " -> " + p.Destination
}

// EffectivePair is a RenamePair after one transform was applied to both sides.
type EffectivePair struct {
	Source         string
	Destination    string
	Transform      string
	FileFilterGlob string
}

// 📐 Planner holds the pairs and the effective pairs derived from them. It is
// built once per run so every pass sees the same set.
type Planner struct {
	pairs     []RenamePair
	set       transform.Set
	effective []EffectivePair
	rules     []text.ReplacementRule
	replacer  text.TextReplacer
}

// NewPlanner validates the pairs and precomputes the effective pairs: pairs
// in caller order, transforms in priority order, duplicates dropped.
func NewPlanner(pairs []RenamePair, set transform.Set) (*Planner, error) {
	if len(pairs) == 0 {
		return nil, errors.Errorf("at least one rename pair is required")
	}
	if len(set) == 0 {
		return nil, errors.Errorf("at least one transform is required")
	}
	for i, p := range pairs {
		if err := p.Validate(); err != nil {
			return nil, errors.Errorf("pair %d: %w", i, err)
		}
	}

	type key struct{ src, dst, glob string }
	seen := map[key]bool{}
	var effective []EffectivePair
	for _, p := range pairs {
		for _, t := range set {
			k := key{t.Apply(p.Source), t.Apply(p.Destination), p.FileFilterGlob}
			if k.src == "" || seen[k] {
				continue
			}
			seen[k] = true
			effective = append(effective, EffectivePair{Source: k.src, Destination: k.dst, Transform: t.Name, FileFilterGlob: k.glob})
		}
	}

	rules := make([]text.ReplacementRule, len(effective))
	for i, e := range effective {
		rules[i] = text.ReplacementRule{FromText: e.Source, ToText: e.Destination, FileFilterGlob: e.FileFilterGlob}
	}
	replacer := text.NewSimpleTextReplacer()
	if err := replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("invalid replacement rules: %w", err)
	}

	return &Planner{
		pairs:     append([]RenamePair(nil), pairs...),
		set:       set,
		effective: effective,
		rules:     rules,
		replacer:  replacer,
	}, nil
}

// Pairs returns a copy of the rename pairs.
func (p *Planner) Pairs() []RenamePair {
	return append([]RenamePair(nil), p.pairs...)
}

// Transforms returns the transform set.
func (p *Planner) Transforms() transform.Set {
	return p.set
}

// Effective returns a copy of the effective pairs in application order.
func (p *Planner) Effective() []EffectivePair {
	return append([]EffectivePair(nil), p.effective...)
}

// Rules exposes the effective pairs as text replacement rules.
func (p *Planner) Rules() []text.ReplacementRule {
	return append([]text.ReplacementRule(nil), p.rules...)
}

// Leaf renames a single path segment. Pairs are folded left to right; for
// each pair the first matching transform is applied to the whole name and
// the transformed token replaced. A name no pair matches comes back as is.
func (p *Planner) Leaf(name string) string {
	for _, pair := range p.pairs {
		t, ok := p.set.FirstMatch(name, pair.Source)
		if !ok {
			continue
		}
		name = strings.ReplaceAll(t.Apply(name), t.Apply(pair.Source), t.Apply(pair.Destination))
	}
	return name
}

// Path renames the last element of path and keeps the parent untouched.
func (p *Planner) Path(path string) string {
	dir, leaf := filepath.Split(path)
	renamed := p.Leaf(leaf)
	if renamed == leaf {
		return path
	}
	return dir + renamed
}

// Content applies the effective pairs whose file filter matches path to
// content. path is project relative with forward slashes.
func (p *Planner) Content(ctx context.Context, path string, content []byte) (*text.ReplacementResult, error) {
	return p.replacer.ReplaceText(ctx, bytes.NewReader(content), text.RulesFor(p.rules, path))
}

// MatchesAll reports whether name contains every pair's source token under
// some transform.
func (p *Planner) MatchesAll(name string) bool {
	for _, pair := range p.pairs {
		if !p.set.Matches(name, pair.Source) {
			return false
		}
	}
	return true
}

// MatchesAllDestinations is MatchesAll for the destination tokens. It finds a
// target that an earlier run already renamed.
func (p *Planner) MatchesAllDestinations(name string) bool {
	for _, pair := range p.pairs {
		if !p.set.Matches(name, pair.Destination) {
			return false
		}
	}
	return true
}
