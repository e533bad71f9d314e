// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"grimm.is/constructdoc/internal/errors"
)

// Env is what config expressions can see.
type Env struct {
	HostPlatform string              // exposed as host_platform
	Getenv       func(string) string // backs env(name); os.Getenv when nil
}

// Load reads and decodes the config file at path, applies defaults and validates.
func Load(path string, env Env) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.KindIO
		if os.IsNotExist(err) {
			kind = errors.KindNotFound
		}
		return nil, errors.Attr(errors.Wrap(err, kind, "read config"), "path", path)
	}
	return LoadBytes(path, data, env)
}

// LoadBytes decodes HCL source. filename is used in diagnostics and must end in .hcl.
func LoadBytes(filename string, data []byte, env Env) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, data, env.evalContext(), &cfg); err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindConfig, "decode config"), "path", filename)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Attr(err, "path", filename)
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists. A missing file is only an error
// when required is set; otherwise Default() is returned and loaded is false.
func LoadOrDefault(path string, required bool, env Env) (cfg *Config, loaded bool, err error) {
	if !required && !fileExists(path) {
		return Default(), false, nil
	}
	cfg, err = Load(path, env)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func (e Env) evalContext() *hcl.EvalContext {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"host_platform": cty.StringVal(e.HostPlatform),
		},
		Functions: map[string]function.Function{
			"env": envFunc(getenv),
		},
	}
}

// envFunc returns the value of an environment variable, or "" when unset.
func envFunc(getenv func(string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(getenv(args[0].AsString())), nil
		},
	})
}
