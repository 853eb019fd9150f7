package status

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultFileFormatter_FormatChange(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   string
	}{
		{
			name:   "rewritten",
			change: Change{Kind: ContentRewritten, Path: "Assets/foo.cs", Replacements: 3},
			want:   "📝 Rewrote Assets/foo.cs (3 replacements)",
		},
		{
			name:   "moved",
			change: Change{Kind: FileMoved, Path: "a.cs", NewPath: "b.cs"},
			want:   "🚚 Moved a.cs -> b.cs",
		},
		{
			name:   "moved_dir",
			change: Change{Kind: DirectoryMoved, Path: "pkg", NewPath: "pkg2"},
			want:   "🚚 Moved pkg -> pkg2",
		},
		{
			name:   "regenerated",
			change: Change{Kind: IdentifiersRegenerated, Replacements: 7},
			want:   "🔑 Regenerated 7 identifiers",
		},
		{
			name:   "skipped",
			change: Change{Kind: Skipped, Path: "x.md"},
			want:   "👍 Unchanged x.md",
		},
	}

	f := NewDefaultFileFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatChange(tt.change))
		})
	}
}

func TestDefaultFileFormatter_FormatSummary(t *testing.T) {
	f := NewDefaultFileFormatter()

	assert.Equal(t, "✅ Nothing to do", f.FormatSummary(nil))
	assert.Equal(t, "✅ 1 files rewritten, 2 paths moved, 4 identifiers regenerated", f.FormatSummary([]Change{
		{Kind: ContentRewritten},
		{Kind: FileMoved},
		{Kind: DirectoryMoved},
		{Kind: IdentifiersRegenerated, Replacements: 4},
		{Kind: Skipped},
	}))
}

func TestDefaultFileFormatter_FormatError(t *testing.T) {
	f := NewDefaultFileFormatter()
	assert.Empty(t, f.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
}

func TestConsoleFileFormatter_FormatChange(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	f := NewConsoleFileFormatter()

	got := f.FormatChange(Change{Kind: FileMoved, Path: "a.cs", NewPath: "b.cs"})
	assert.Contains(t, got, "→ a.cs")
	assert.Contains(t, got, "moved")
	assert.Contains(t, got, "b.cs")

	got = f.FormatChange(Change{Kind: ContentRewritten, Path: "a.cs", Replacements: 2})
	assert.Contains(t, got, "⟳ a.cs")
	assert.Contains(t, got, "2 replacements")
}
