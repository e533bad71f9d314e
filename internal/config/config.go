// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the generator's own settings from an optional HCL file.
//
//	outputs  = ["CONSTRUCT.md", "docs/source/construct-yaml.md"]
//	platform = env("DOCGEN_PLATFORM") != "" ? env("DOCGEN_PLATFORM") : host_platform
//
//	schema {
//	  source = "registry" # or "go"
//	}
//
//	platforms {
//	  supported = ["linux-64", "osx-arm64"]
//	}
//
//	log {
//	  level = "debug"
//	}
package config

import (
	"os"
	"path/filepath"
	"slices"

	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/platform"
	"grimm.is/constructdoc/internal/validation"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "docgen.hcl"

// Schema sources.
const (
	SourceRegistry = "registry"
	SourceGo       = "go"
)

// DefaultOutputs are the two destinations of the reference document.
var DefaultOutputs = []string{
	"CONSTRUCT.md",
	filepath.Join("docs", "source", "construct-yaml.md"),
}

// Config is the generator configuration.
type Config struct {
	Outputs   []string         `hcl:"outputs,optional"`
	Platform  string           `hcl:"platform,optional"` // empty: host platform
	Template  string           `hcl:"template,optional"` // empty: embedded template
	Schema    *SchemaConfig    `hcl:"schema,block"`
	Platforms *PlatformsConfig `hcl:"platforms,block"`
	Log       *LogConfig       `hcl:"log,block"`
}

// SchemaConfig selects where key descriptors come from.
type SchemaConfig struct {
	Source string `hcl:"source,optional"`
	Dir    string `hcl:"dir,optional"`  // go source only
	Type   string `hcl:"type,optional"` // go source only
}

// PlatformsConfig overrides the built-in platform registries.
type PlatformsConfig struct {
	Supported []string `hcl:"supported,optional"`
	Valid     []string `hcl:"valid,optional"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if len(c.Outputs) == 0 {
		c.Outputs = slices.Clone(DefaultOutputs)
	}
	if c.Schema == nil {
		c.Schema = &SchemaConfig{}
	}
	if c.Schema.Source == "" {
		c.Schema.Source = SourceRegistry
	}
	if c.Platforms == nil {
		c.Platforms = &PlatformsConfig{}
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Outputs))
	for _, out := range c.Outputs {
		if err := validation.ValidateOutputPath(out); err != nil {
			return errors.Attr(errors.Wrap(err, errors.KindConfig, "outputs"), "output", out)
		}
		clean := filepath.Clean(out)
		if seen[clean] {
			return errors.Attr(errors.New(errors.KindConfig, "duplicate output path"), "path", out)
		}
		seen[clean] = true
	}

	if c.Platform != "" {
		if _, _, err := platform.Parse(c.Platform); err != nil {
			return errors.Wrap(err, errors.KindConfig, "platform")
		}
	}

	if err := validation.ValidateAllowlist(c.Schema.Source, []string{SourceRegistry, SourceGo}); err != nil {
		return errors.Wrap(err, errors.KindConfig, "schema source")
	}
	if c.Schema.Source == SourceGo && (c.Schema.Dir == "" || c.Schema.Type == "") {
		return errors.New(errors.KindConfig, `schema source "go" needs dir and type`)
	}

	for _, list := range [][]string{c.Platforms.Supported, c.Platforms.Valid} {
		for _, id := range list {
			if _, _, err := platform.Parse(id); err != nil {
				return errors.Wrap(err, errors.KindConfig, "platforms")
			}
		}
	}
	return nil
}

// Registry returns the platform registry with any configured overrides.
func (c *Config) Registry() *platform.Registry {
	def := platform.Default()
	supported, valid := def.Supported(), def.Valid()
	if c.Platforms != nil {
		if len(c.Platforms.Supported) > 0 {
			supported = c.Platforms.Supported
		}
		if len(c.Platforms.Valid) > 0 {
			valid = c.Platforms.Valid
		}
	}
	return platform.NewRegistry(supported, valid)
}

// OutputPaths resolves the outputs against root. Absolute outputs are kept.
func (c *Config) OutputPaths(root string) []string {
	paths := make([]string, 0, len(c.Outputs))
	for _, out := range c.Outputs {
		if filepath.IsAbs(out) {
			paths = append(paths, out)
			continue
		}
		paths = append(paths, filepath.Join(root, out))
	}
	return paths
}

// ResolvePath resolves a config-relative path (template, schema dir) against root.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
