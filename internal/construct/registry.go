// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package construct holds the canonical list of keys accepted in a
// construct.yaml installer specification. The list lives in keys.yaml,
// embedded at build time, and is exposed as a configdoc.FieldSource.
package construct

import (
	"bytes"
	_ "embed"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"grimm.is/constructdoc/internal/configdoc"
	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/logging"
	"grimm.is/constructdoc/internal/validation"
)

//go:embed keys.yaml
var keysYAML []byte

// Key is one entry of the registry as written in keys.yaml.
type Key struct {
	Name        string   `yaml:"name"`
	Required    string   `yaml:"required"`
	Types       []string `yaml:"types"`
	Description string   `yaml:"description"`
}

// typeNames are the only type names a key may declare.
var typeNames = map[string]bool{
	"string":     true,
	"list":       true,
	"dictionary": true,
	"boolean":    true,
	"number":     true,
}

// Registry is the ordered construct.yaml key table.
type Registry struct {
	keys   []Key
	logger *logging.Logger
}

// Load returns the embedded registry.
func Load(logger *logging.Logger) (*Registry, error) {
	return Decode(bytes.NewReader(keysYAML), logger)
}

// Decode reads a registry in keys.yaml format from r. Names must be unique
// and every type must be a known type name.
func Decode(r io.Reader, logger *logging.Logger) (*Registry, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	var keys []Key
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&keys); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, errors.KindConfig, "decode key registry")
	}

	seen := make(map[string]bool, len(keys))
	for i, k := range keys {
		if err := validation.ValidateKeyName(k.Name); err != nil {
			return nil, errors.Attr(err, "index", i)
		}
		if seen[k.Name] {
			return nil, errors.Attr(errors.New(errors.KindValidation, "duplicate key"), "key", k.Name)
		}
		seen[k.Name] = true

		if len(k.Types) == 0 {
			return nil, errors.Attr(errors.New(errors.KindValidation, "key declares no type"), "key", k.Name)
		}
		for _, t := range k.Types {
			if !typeNames[t] {
				err := errors.Errorf(errors.KindValidation, "unknown type %q", t)
				return nil, errors.Attr(err, "key", k.Name)
			}
		}
	}

	return &Registry{keys: keys, logger: logger.WithComponent("construct")}, nil
}

// Fields implements configdoc.FieldSource. Keys whose description is the
// skip sentinel are left out; descriptions are trimmed.
func (r *Registry) Fields() ([]configdoc.FieldDescriptor, error) {
	fields := make([]configdoc.FieldDescriptor, 0, len(r.keys))
	for _, k := range r.keys {
		desc := strings.TrimSpace(k.Description)
		if desc == configdoc.SkipSentinel {
			r.logger.Info("Not including key because the skip sentinel is set", "key", k.Name)
			continue
		}
		fields = append(fields, configdoc.NewFieldDescriptor(k.Name, requiredText(k.Required), k.Types, desc))
	}
	return fields, nil
}

// requiredText normalises boolean spellings to yes/no and keeps qualifiers.
func requiredText(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true":
		return "yes"
	case "no", "false", "":
		return "no"
	default:
		return strings.TrimSpace(s)
	}
}
