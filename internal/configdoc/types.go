// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"sort"
	"strings"
)

// FieldDescriptor documents one construct.yaml key.
type FieldDescriptor struct {
	Name        string
	Required    string // "yes", "no", or qualified text such as "conditionally"
	Type        string // comma-joined type names
	Description string // trusted markup, rendered verbatim
	TypeSuffix  string // "s" when Type lists several types
}

// NewFieldDescriptor builds a descriptor, joining types for display and
// setting the plural suffix when more than one type is accepted. The
// description is kept as given; providers trim their own text.
func NewFieldDescriptor(name, required string, types []string, description string) FieldDescriptor {
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			names = append(names, t)
		}
	}

	suffix := ""
	if len(names) > 1 {
		suffix = "s"
	}

	return FieldDescriptor{
		Name:        name,
		Required:    required,
		Type:        strings.Join(names, ", "),
		Description: description,
		TypeSuffix:  suffix,
	}
}

// SelectorMap maps selector names to their value on the evaluated platform.
type SelectorMap map[string]bool

// Keys returns the selector names in ascending lexicographic order.
func (m SelectorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PlatformSet holds the supported platforms and their complement within the
// valid platform universe. The two lists never share an entry.
type PlatformSet struct {
	Supported   []string
	Unsupported []string
}

// Metadata is everything the renderer needs for one document.
type Metadata struct {
	Platform  string
	Fields    []FieldDescriptor
	Selectors SelectorMap
	Platforms PlatformSet
}

// FieldSource provides the ordered key descriptors.
type FieldSource interface {
	Fields() ([]FieldDescriptor, error)
}

// FieldSourceFunc adapts a function to FieldSource.
type FieldSourceFunc func() ([]FieldDescriptor, error)

// Fields calls f.
func (f FieldSourceFunc) Fields() ([]FieldDescriptor, error) {
	return f()
}

// SelectorFunc evaluates the selector namespace for a platform identifier.
type SelectorFunc func(platformID string) (SelectorMap, error)

// PlatformRegistry exposes the supported allow-list and the full set of valid
// platform identifiers.
type PlatformRegistry interface {
	Supported() []string
	Valid() []string
}
