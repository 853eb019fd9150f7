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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/walteh/retemplate/pkg/rename"
	"github.com/walteh/retemplate/pkg/transform"
	"github.com/walteh/retemplate/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

const (
	// 🏷️ Tokens baked into the template project
	TemplateCompanyName = "nickmaltbie"
	TemplateProjectName = "Template Unity Package"

	DefaultPackagesDir = "Packages"
)

// DefaultIgnorePrefixes are version control, build output and editor-local
// folders.
var DefaultIgnorePrefixes = []string{
	".git",
	"Library",
	"Logs",
	"Temp",
	"obj",
	"UserSettings",
}

// DefaultExtensions are the text files whose contents get rewritten.
var DefaultExtensions = []string{
	".asmdef",
	".cs",
	".csproj",
	".env",
	".json",
	".md",
	".sh",
	".yml",
}

// 📚 Config is everything one rename run needs
type Config struct {
	// ProjectRoot is the tree whose contents are rewritten. Relative paths
	// resolve against the config file's directory.
	ProjectRoot string `json:"project_root,omitempty" yaml:"project_root,omitempty" hcl:"project_root,optional"`
	// PackagesDir holds the package directory to rename, relative to ProjectRoot.
	PackagesDir string `json:"packages_dir,omitempty" yaml:"packages_dir,omitempty" hcl:"packages_dir,optional"`
	// Pairs are applied in order: path renames fold over them left to right.
	Pairs                 []rename.RenamePair `json:"pairs" yaml:"pairs" hcl:"pair,block"`
	IgnorePrefixes        []string            `json:"ignore_prefixes,omitempty" yaml:"ignore_prefixes,omitempty" hcl:"ignore_prefixes,optional"`
	IgnoreGlobs           []string            `json:"ignore_globs,omitempty" yaml:"ignore_globs,omitempty" hcl:"ignore_globs,optional"`
	Extensions            []string            `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`
	Transforms            []string            `json:"transforms,omitempty" yaml:"transforms,omitempty" hcl:"transforms,optional"`
	RegenerateIdentifiers bool                `json:"regenerate_identifiers,omitempty" yaml:"regenerate_identifiers,omitempty" hcl:"regenerate_identifiers,optional"`

	location string
}

// 🏭 Default returns a config that renames the template tokens to themselves.
// Callers set the destinations before running.
func Default() *Config {
	return &Config{
		ProjectRoot: ".",
		PackagesDir: DefaultPackagesDir,
		Pairs: []rename.RenamePair{
			{Source: TemplateCompanyName, Destination: TemplateCompanyName},
			{Source: TemplateProjectName, Destination: TemplateProjectName},
		},
		IgnorePrefixes: append([]string(nil), DefaultIgnorePrefixes...),
		Extensions:     append([]string(nil), DefaultExtensions...),
	}
}

// Location is the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate fills defaults, normalizes paths and checks required fields
func (cfg *Config) Validate() error {
	if len(cfg.Pairs) == 0 {
		return errors.Errorf("at least one pair is required")
	}
	for i := range cfg.Pairs {
		cfg.Pairs[i].Destination = strings.TrimSpace(cfg.Pairs[i].Destination)
		if err := cfg.Pairs[i].Validate(); err != nil {
			return errors.Errorf("pairs[%d]: %w", i, err)
		}
	}

	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = "."
	}
	if !filepath.IsAbs(cfg.ProjectRoot) && cfg.location != "" {
		cfg.ProjectRoot = filepath.Join(filepath.Dir(cfg.location), cfg.ProjectRoot)
	}
	cfg.ProjectRoot = filepath.Clean(cfg.ProjectRoot)

	if cfg.PackagesDir == "" {
		cfg.PackagesDir = DefaultPackagesDir
	}
	if filepath.IsAbs(cfg.PackagesDir) {
		return errors.Errorf("packages_dir must be relative to project_root, got %q", cfg.PackagesDir)
	}
	cfg.PackagesDir = filepath.Clean(cfg.PackagesDir)

	if cfg.IgnorePrefixes == nil {
		cfg.IgnorePrefixes = append([]string(nil), DefaultIgnorePrefixes...)
	}
	if cfg.Extensions == nil {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}

	if _, err := transform.FromNames(cfg.Transforms); err != nil {
		return errors.Errorf("transforms: %w", err)
	}
	if err := cfg.Filter().Validate(); err != nil {
		return errors.Errorf("ignore_globs: %w", err)
	}
	if _, err := cfg.Planner(); err != nil {
		return errors.Errorf("pairs: %w", err)
	}

	return nil
}

// PackagesRoot is the directory searched for the package to rename.
func (cfg *Config) PackagesRoot() string {
	return filepath.Join(cfg.ProjectRoot, cfg.PackagesDir)
}

// Filter builds the walk filter.
func (cfg *Config) Filter() walk.Filter {
	return walk.Filter{
		IgnorePrefixes: cfg.IgnorePrefixes,
		IgnoreGlobs:    cfg.IgnoreGlobs,
		Extensions:     cfg.Extensions,
	}
}

// Planner builds the rename planner for this config.
func (cfg *Config) Planner() (*rename.Planner, error) {
	set, err := transform.FromNames(cfg.Transforms)
	if err != nil {
		return nil, errors.Errorf("building transforms: %w", err)
	}
	planner, err := rename.NewPlanner(cfg.Pairs, set)
	if err != nil {
		return nil, errors.Errorf("building planner: %w", err)
	}
	return planner, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	pairs := make([]string, len(cfg.Pairs))
	for i, p := range cfg.Pairs {
		pairs[i] = fmt.Sprintf("%q -> %q", p.Source, p.Destination)
	}
	return fmt.Sprintf("%s [%s]", cfg.PackagesRoot(), strings.Join(pairs, ", "))
}
