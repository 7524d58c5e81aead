// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered decoding of
// TOML and YAML files, environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gopylint/internal/logging"
	"github.com/yaklabco/gopylint/pkg/config"
	"github.com/yaklabco/gopylint/pkg/lint"
)

// Sentinel errors for error categorization.
var (
	// ErrConfigParse indicates a configuration file could not be read or decoded.
	ErrConfigParse = errors.New("invalid configuration file")

	// ErrInvalidConfig indicates the merged configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded after the user and project configs.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Overrides holds values from CLI flags. These take highest precedence.
	Overrides *Overrides

	// Registry is used to recognise rule identifiers in enable/disable
	// lists. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by layering every source onto the defaults.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (GOPYLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (upward search from the working directory)
//  5. User config ($XDG_CONFIG_HOME/gopylint/config.toml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		path   string
		ignore bool
	}{
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig},
		{paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.ignore {
			continue
		}

		unknown, err := LoadFile(layer.path, cfg)
		if err != nil {
			return nil, err
		}
		for _, key := range unknown {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown configuration key %q", layer.path, key))
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldSource, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	opts.Overrides.apply(cfg)

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, &validation.Errors[0])
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	for _, warning := range result.Warnings {
		logger.Debug("config warning", logging.FieldError, warning)
	}

	result.Config = cfg
	return result, nil
}

// LoadFile decodes the config file at path on top of cfg, choosing the
// decoder from the file name. It returns unrecognised TOML keys.
func LoadFile(path string, cfg *config.Config) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}

	var unknown []string
	switch {
	case filepath.Base(path) == pyprojectFile:
		unknown, err = config.DecodePyproject(content, cfg)
		if errors.Is(err, config.ErrNoToolTable) {
			err = nil
		}
	case isYAML(path):
		err = config.DecodeYAML(content, cfg)
	default:
		unknown, err = config.DecodeTOML(content, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}

	return unknown, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
