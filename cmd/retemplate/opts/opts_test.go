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

package opts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retemplate/pkg/config"
	"github.com/walteh/retemplate/pkg/rename"
)

func TestOverridesApply(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name        string
		cfg         func() *config.Config
		overrides   Overrides
		wantPairs   []rename.RenamePair
		wantRoot    string
		wantRegen   bool
		errContains string
	}{
		{
			name:      "defaults_with_destinations",
			cfg:       config.Default,
			overrides: Overrides{ToCompany: "acme", ToProject: "Widget", Root: root, RegenerateIDs: true},
			wantPairs: []rename.RenamePair{
				{Source: "nickmaltbie", Destination: "acme"},
				{Source: "Template Unity Package", Destination: "Widget"},
			},
			wantRoot:  root,
			wantRegen: true,
		},
		{
			name: "source_override",
			cfg:  config.Default,
			overrides: Overrides{
				Company: "oldco", ToCompany: "acme",
				Project: "Old Thing", ToProject: "Widget",
			},
			wantPairs: []rename.RenamePair{
				{Source: "oldco", Destination: "acme"},
				{Source: "Old Thing", Destination: "Widget"},
			},
			wantRoot: ".",
		},
		{
			name: "adds_missing_project_pair",
			cfg: func() *config.Config {
				cfg := config.Default()
				cfg.Pairs = []rename.RenamePair{{Source: "a", Destination: "b"}}
				return cfg
			},
			overrides: Overrides{Project: "x", ToProject: "y"},
			wantPairs: []rename.RenamePair{
				{Source: "a", Destination: "b"},
				{Source: "x", Destination: "y"},
			},
			wantRoot: ".",
		},
		{
			name:        "missing_destination",
			cfg:         config.Default,
			overrides:   Overrides{ToCompany: "acme"},
			errContains: `no new name for "Template Unity Package"`,
		},
		{
			name:        "project_without_source",
			cfg:         func() *config.Config { c := config.Default(); c.Pairs = nil; return c },
			overrides:   Overrides{ToProject: "Widget"},
			errContains: "pairs[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg()
			err := tt.overrides.Apply(cfg)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPairs, cfg.Pairs)
			assert.Equal(t, filepath.Clean(tt.wantRoot), cfg.ProjectRoot)
			assert.Equal(t, tt.wantRegen, cfg.RegenerateIdentifiers)
		})
	}
}
