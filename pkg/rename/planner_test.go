package rename

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retemplate/pkg/transform"
)

func templatePairs() []RenamePair {
	return []RenamePair{
		{Source: "nickmaltbie", Destination: "acme"},
		{Source: "Template Unity Package", Destination: "Widget"},
	}
}

func content(t *testing.T, p *Planner, path, in string) (string, int) {
	t.Helper()
	res, err := p.Content(context.Background(), path, []byte(in))
	require.NoError(t, err)
	return string(res.ModifiedContent), res.ReplacementCount
}

func newTestPlanner(t *testing.T, pairs []RenamePair) *Planner {
	t.Helper()
	p, err := NewPlanner(pairs, transform.Canonical())
	require.NoError(t, err)
	return p
}

func TestNewPlanner_Validation(t *testing.T) {
	tests := []struct {
		name      string
		pairs     []RenamePair
		set       transform.Set
		wantError string
	}{
		{
			name:      "no_pairs",
			set:       transform.Canonical(),
			wantError: "at least one rename pair is required",
		},
		{
			name:      "no_transforms",
			pairs:     templatePairs(),
			wantError: "at least one transform is required",
		},
		{
			name:      "empty_source",
			pairs:     []RenamePair{{Source: "", Destination: "x"}},
			set:       transform.Canonical(),
			wantError: "pair 0: source is required",
		},
		{
			name:      "blank_destination",
			pairs:     []RenamePair{{Source: "a", Destination: "b"}, {Source: "x", Destination: "  "}},
			set:       transform.Canonical(),
			wantError: `pair 1: destination for "x" is required`,
		},
		{
			name:      "bad_file_filter_glob",
			pairs:     []RenamePair{{Source: "a", Destination: "b", FileFilterGlob: "Assets/[*.cs"}},
			set:       transform.Canonical(),
			wantError: "invalid file_filter_glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlanner(tt.pairs, tt.set)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestPlanner_EffectivePairsDeduplicated(t *testing.T) {
	p := newTestPlanner(t, templatePairs())

	assert.Equal(t, []EffectivePair{
		{Source: "nickmaltbie", Destination: "acme", Transform: transform.NameIdentity},
		{Source: "Template Unity Package", Destination: "Widget", Transform: transform.NameIdentity},
		{Source: "TemplateUnityPackage", Destination: "Widget", Transform: transform.NameNoSpaces},
		{Source: "template unity package", Destination: "widget", Transform: transform.NameLower},
		{Source: "templateunitypackage", Destination: "widget", Transform: transform.NameLowerNoSpaces},
	}, p.Effective())

	rules := p.Rules()
	require.Len(t, rules, 5)
	assert.Equal(t, "nickmaltbie", rules[0].FromText)
	assert.Equal(t, "acme", rules[0].ToText)
}

func TestPlanner_Leaf(t *testing.T) {
	tests := []struct {
		name  string
		pairs []RenamePair
		leaf  string
		want  string
	}{
		{
			name:  "package_dir_no_spaces",
			pairs: templatePairs(),
			leaf:  "nickmaltbie.TemplateUnityPackage",
			want:  "acme.Widget",
		},
		{
			name:  "reverse_domain_lowercase",
			pairs: templatePairs(),
			leaf:  "com.nickmaltbie.templateunitypackage.asmdef",
			want:  "com.acme.widget.asmdef",
		},
		{
			name:  "only_company",
			pairs: templatePairs(),
			leaf:  "nickmaltbie.Tools.cs",
			want:  "acme.Tools.cs",
		},
		{
			name:  "untouched",
			pairs: templatePairs(),
			leaf:  "Readme.md",
			want:  "Readme.md",
		},
		{
			name:  "identity_preferred_over_lower",
			pairs: []RenamePair{{Source: "Acme", Destination: "Globex"}},
			leaf:  "Acme.acme",
			want:  "Globex.acme",
		},
		{
			name:  "lower_when_only_case_differs",
			pairs: []RenamePair{{Source: "Acme", Destination: "Globex"}},
			leaf:  "acme.Tools",
			want:  "globex.tools",
		},
		{
			name:  "fold_uses_previous_output",
			pairs: []RenamePair{{Source: "Foo", Destination: "Bar"}, {Source: "Bar Baz", Destination: "Qux"}},
			leaf:  "FooBaz",
			want:  "Qux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, tt.pairs)
			assert.Equal(t, tt.want, p.Leaf(tt.leaf))
		})
	}
}

func TestPlanner_PathKeepsParent(t *testing.T) {
	p := newTestPlanner(t, templatePairs())

	in := filepath.Join("Packages", "nickmaltbie.TemplateUnityPackage", "Runtime", "nickmaltbie.TemplateUnityPackage.asmdef")
	want := filepath.Join("Packages", "nickmaltbie.TemplateUnityPackage", "Runtime", "acme.Widget.asmdef")
	assert.Equal(t, want, p.Path(in))

	untouched := filepath.Join("nickmaltbie", "Readme.md")
	assert.Equal(t, untouched, p.Path(untouched))

	assert.Equal(t, "acme.Widget", p.Path("nickmaltbie.TemplateUnityPackage"))
}

func TestPlanner_Content(t *testing.T) {
	p := newTestPlanner(t, templatePairs())

	in := `{"name": "com.nickmaltbie.templateunitypackage", "displayName": "Template Unity Package", "ns": "nickmaltbie.TemplateUnityPackage"}`
	got, n := content(t, p, "package.json", in)
	assert.Equal(t, `{"name": "com.acme.widget", "displayName": "Widget", "ns": "acme.Widget"}`, got)
	assert.Equal(t, 5, n)

	again, n := content(t, p, "package.json", got)
	assert.Equal(t, got, again, "second pass must be a no-op")
	assert.Zero(t, n)
}

func TestPlanner_ContentWithoutTokensUnchanged(t *testing.T) {
	p := newTestPlanner(t, templatePairs())

	for _, in := range []string{"", "hello world", "Template Package", "nick maltbie", "unity"} {
		got, n := content(t, p, "README.md", in)
		assert.Equal(t, in, got)
		assert.Zero(t, n)
	}
}

func TestPlanner_ContentFileFilter(t *testing.T) {
	p := newTestPlanner(t, []RenamePair{
		{Source: "nickmaltbie", Destination: "acme", FileFilterGlob: "Packages/**"},
		{Source: "Template Unity Package", Destination: "Widget"},
	})

	in := "nickmaltbie / Template Unity Package"

	got, n := content(t, p, "Packages/pkg/README.md", in)
	assert.Equal(t, "acme / Widget", got)
	assert.Equal(t, 2, n)

	got, n = content(t, p, "Assets/README.md", in)
	assert.Equal(t, "nickmaltbie / Widget", got, "scoped pair skips files outside its glob")
	assert.Equal(t, 1, n)

	assert.Equal(t, "acme.Widget", p.Leaf("nickmaltbie.TemplateUnityPackage"), "path renames ignore the glob")
}

func TestPlanner_Matches(t *testing.T) {
	p := newTestPlanner(t, templatePairs())

	assert.True(t, p.MatchesAll("com.nickmaltbie.TemplateUnityPackage"))
	assert.False(t, p.MatchesAll("com.nickmaltbie.Other"))
	assert.False(t, p.MatchesAllDestinations("com.nickmaltbie.TemplateUnityPackage"))
	assert.True(t, p.MatchesAllDestinations("com.acme.widget"))
}

func TestPlanner_ExtraTransforms(t *testing.T) {
	set, err := transform.FromNames([]string{transform.NameKebab})
	require.NoError(t, err)
	p, err := NewPlanner(templatePairs(), set)
	require.NoError(t, err)

	assert.True(t, p.MatchesAll("nickmaltbie.Template-Unity-Package"))
	assert.Equal(t, "acme.Widget", p.Leaf("nickmaltbie.Template-Unity-Package"))
}
