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

// Package transform holds the string normalizations used to find a token
// written in a different casing or spacing convention.
package transform

import (
	"sort"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Func is a pure string normalization.
type Func func(string) string

// Transform is a named normalization.
type Transform struct {
	Name  string
	Apply Func
}

const (
	NameIdentity      = "identity"
	NameNoSpaces      = "no-spaces"
	NameLower         = "lower"
	NameLowerNoSpaces = "lower-no-spaces"
	NameKebab         = "kebab"
	NameLowerKebab    = "lower-kebab"
	NameSnake         = "snake"
	NameLowerSnake    = "lower-snake"
)

func Identity(s string) string      { return s }
func NoSpaces(s string) string      { return strings.ReplaceAll(s, " ", "") }
func Lower(s string) string         { return strings.ToLower(s) }
func LowerNoSpaces(s string) string { return Lower(NoSpaces(s)) }
func Kebab(s string) string         { return strings.ReplaceAll(s, " ", "-") }
func LowerKebab(s string) string    { return Lower(Kebab(s)) }
func Snake(s string) string         { return strings.ReplaceAll(s, " ", "_") }
func LowerSnake(s string) string    { return Lower(Snake(s)) }

var (
	mu       sync.RWMutex
	registry = map[string]Transform{}
)

func init() {
	for _, t := range []Transform{
		{Name: NameIdentity, Apply: Identity},
		{Name: NameNoSpaces, Apply: NoSpaces},
		{Name: NameLower, Apply: Lower},
		{Name: NameLowerNoSpaces, Apply: LowerNoSpaces},
		{Name: NameKebab, Apply: Kebab},
		{Name: NameLowerKebab, Apply: LowerKebab},
		{Name: NameSnake, Apply: Snake},
		{Name: NameLowerSnake, Apply: LowerSnake},
	} {
		Register(t)
	}
}

// Register makes a transform available to FromNames. A later registration
// with the same name replaces the earlier one.
func Register(t Transform) {
	mu.Lock()
	defer mu.Unlock()
	registry[t.Name] = t
}

// Lookup returns the registered transform with the given name.
func Lookup(name string) (Transform, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Names lists every registered transform name, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set is an ordered list of transforms. Order is priority: the first
// transform that matches wins.
type Set []Transform

// Canonical returns identity, no-spaces, lower and lower-no-spaces, in that
// order.
func Canonical() Set {
	return Set{
		{Name: NameIdentity, Apply: Identity},
		{Name: NameNoSpaces, Apply: NoSpaces},
		{Name: NameLower, Apply: Lower},
		{Name: NameLowerNoSpaces, Apply: LowerNoSpaces},
	}
}

// FromNames builds the canonical set followed by the named extras. Names
// already present are skipped so the canonical priority cannot be reordered.
func FromNames(names []string) (Set, error) {
	set := Canonical()
	seen := map[string]bool{}
	for _, t := range set {
		seen[t.Name] = true
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		t, ok := Lookup(name)
		if !ok {
			return nil, errors.Errorf("unknown transform %q (known: %s)", name, strings.Join(Names(), ", "))
		}
		seen[name] = true
		set = append(set, t)
	}
	return set, nil
}

// FirstMatch returns the first transform t for which t(text) contains
// t(needle). An empty needle never matches.
func (s Set) FirstMatch(text, needle string) (Transform, bool) {
	if needle == "" {
		return Transform{}, false
	}
	for _, t := range s {
		n := t.Apply(needle)
		if n == "" {
			continue
		}
		if strings.Contains(t.Apply(text), n) {
			return t, true
		}
	}
	return Transform{}, false
}

// Matches reports whether any transform in the set matches.
func (s Set) Matches(text, needle string) bool {
	_, ok := s.FirstMatch(text, needle)
	return ok
}

// Names returns the transform names in priority order.
func (s Set) Names() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.Name
	}
	return out
}
