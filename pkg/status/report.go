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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 ChangeKind is what happened to a path
type ChangeKind int

const (
	ChangeUnknown ChangeKind = iota
	ContentRewritten
	FileMoved
	DirectoryMoved
	IdentifiersRegenerated
	Skipped
)

// String returns a string representation of ChangeKind
func (k ChangeKind) String() string {
	switch k {
	case ContentRewritten:
		return "rewritten"
	case FileMoved:
		return "moved"
	case DirectoryMoved:
		return "moved-dir"
	case IdentifiersRegenerated:
		return "regenerated"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 Change is one committed (or, in a plan, intended) modification
type Change struct {
	Kind         ChangeKind
	Path         string
	NewPath      string // set for moves
	Replacements int    // set for content rewrites and regenerations
}

// 📈 Reporter records changes in the order they happen
type Reporter struct {
	formatter FileFormatter

	mu      sync.Mutex
	changes []Change
}

// NewReporter creates a reporter. A nil formatter selects the default.
func NewReporter(formatter FileFormatter) *Reporter {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Reporter{formatter: formatter}
}

// Track records a change and logs it.
func (r *Reporter) Track(ctx context.Context, c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Str("kind", c.Kind.String()).
		Str("path", c.Path).
		Str("new_path", c.NewPath).
		Int("replacements", c.Replacements).
		Msg(r.formatter.FormatChange(c))
}

// Changes returns a copy of everything tracked so far.
func (r *Reporter) Changes() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

// Count returns how many changes of the given kind were tracked.
func (r *Reporter) Count(kind ChangeKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets every tracked change.
func (r *Reporter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = nil
}
