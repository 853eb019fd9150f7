package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = ".retemplate.yaml"

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .retemplate will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if strings.ToLower(filepath.Ext(path)) == ".retemplate" || filepath.Base(path) == ".retemplate" {
		cfg, err = (&YAMLParser{}).Parse(ctx, data)
		if err != nil {
			var hclErr error
			cfg, hclErr = (&HCLParser{}).Parse(ctx, data)
			if hclErr != nil {
				return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", path, err, hclErr)
			}
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
		}
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving config path: %w", err)
	}
	cfg.location = abs

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. An explicitly requested file that is missing is still an error.
func LoadOrDefault(ctx context.Context, path string, explicit bool) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("checking config file: %w", err)
	}
	return LoadConfig(ctx, path)
}
