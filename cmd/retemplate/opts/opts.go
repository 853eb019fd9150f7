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

	"github.com/walteh/retemplate/pkg/config"
	"github.com/walteh/retemplate/pkg/log"
	"github.com/walteh/retemplate/pkg/rename"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	UserLogger *UserLogger
	Console    *log.Logger
}

// Overrides are the token and root flags. Empty fields leave the config alone.
type Overrides struct {
	Company       string
	Project       string
	ToCompany     string
	ToProject     string
	Root          string
	RegenerateIDs bool
}

// Apply writes the overrides into cfg and validates the result. The first
// pair is the company token and the second the project token.
func (o Overrides) Apply(cfg *config.Config) error {
	set := func(i int, src, dst string) {
		for len(cfg.Pairs) <= i {
			cfg.Pairs = append(cfg.Pairs, rename.RenamePair{})
		}
		if src != "" {
			cfg.Pairs[i].Source = src
		}
		if dst != "" {
			cfg.Pairs[i].Destination = dst
		}
	}
	if o.Company != "" || o.ToCompany != "" {
		set(0, o.Company, o.ToCompany)
	}
	if o.Project != "" || o.ToProject != "" {
		set(1, o.Project, o.ToProject)
	}

	if o.Root != "" {
		abs, err := filepath.Abs(o.Root)
		if err != nil {
			return errors.Errorf("resolving root: %w", err)
		}
		cfg.ProjectRoot = abs
	}
	if o.RegenerateIDs {
		cfg.RegenerateIdentifiers = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, p := range cfg.Pairs {
		if p.Source == p.Destination {
			return errors.Errorf("no new name for %q: pass --to-company/--to-project or set a destination in the config", p.Source)
		}
	}
	return nil
}
