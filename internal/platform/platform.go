// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package platform knows the build-target identifiers ("<os>-<arch>") an
// installer can be built for, and evaluates the selector namespace that
// construct.yaml selectors are matched against.
package platform

import (
	"slices"
	"strings"

	"grimm.is/constructdoc/internal/errors"
)

// Supported platforms are built and tested.
var supported = []string{
	"linux-64",
	"linux-aarch64",
	"linux-ppc64le",
	"linux-s390x",
	"osx-64",
	"osx-arm64",
	"win-64",
}

// Valid platforms are everything the package index knows about.
var valid = []string{
	"emscripten-wasm32",
	"freebsd-64",
	"linux-32",
	"linux-64",
	"linux-aarch64",
	"linux-armv6l",
	"linux-armv7l",
	"linux-ppc64",
	"linux-ppc64le",
	"linux-riscv64",
	"linux-s390x",
	"osx-64",
	"osx-arm64",
	"wasi-wasm32",
	"win-32",
	"win-64",
	"win-arm64",
	"zos-z",
}

// Registry holds the supported allow-list and the valid universe.
type Registry struct {
	supported []string
	valid     []string
}

// Default returns the built-in registry.
func Default() *Registry {
	return NewRegistry(supported, valid)
}

// NewRegistry creates a registry from explicit lists. The lists are copied.
func NewRegistry(supported, valid []string) *Registry {
	return &Registry{
		supported: slices.Clone(supported),
		valid:     slices.Clone(valid),
	}
}

// Supported returns the supported identifiers in registry order.
func (r *Registry) Supported() []string {
	return slices.Clone(r.supported)
}

// Valid returns every valid identifier in registry order.
func (r *Registry) Valid() []string {
	return slices.Clone(r.valid)
}

// IsValid reports whether id is in the valid set.
func (r *Registry) IsValid(id string) bool {
	return slices.Contains(r.valid, id)
}

// IsSupported reports whether id is in the supported set.
func (r *Registry) IsSupported(id string) bool {
	return slices.Contains(r.supported, id)
}

// Parse splits an identifier into its os and arch parts.
func Parse(id string) (osName, arch string, err error) {
	osName, arch, ok := strings.Cut(id, "-")
	if !ok || osName == "" || arch == "" || strings.ContainsAny(id, " \t\n") {
		err = errors.Errorf(errors.KindValidation, "invalid platform %q: expected <os>-<arch>", id)
		return "", "", err
	}
	return osName, arch, nil
}

var goosNames = map[string]string{
	"linux":   "linux",
	"darwin":  "osx",
	"windows": "win",
	"freebsd": "freebsd",
}

var goarchNames = map[string]string{
	"amd64":   "64",
	"386":     "32",
	"arm64":   "aarch64",
	"arm":     "armv7l",
	"ppc64le": "ppc64le",
	"ppc64":   "ppc64",
	"s390x":   "s390x",
	"riscv64": "riscv64",
}

// Host maps a Go GOOS/GOARCH pair to a platform identifier, e.g.
// linux/amd64 -> linux-64, darwin/arm64 -> osx-arm64.
func Host(goos, goarch string) (string, error) {
	osName, ok := goosNames[goos]
	if !ok {
		err := errors.Errorf(errors.KindValidation, "unsupported host os %q", goos)
		return "", errors.Attr(err, "goarch", goarch)
	}
	arch, ok := goarchNames[goarch]
	if !ok {
		err := errors.Errorf(errors.KindValidation, "unsupported host arch %q", goarch)
		return "", errors.Attr(err, "goos", goos)
	}
	// Apple and Windows name 64-bit ARM arm64; Linux uses aarch64.
	if goarch == "arm64" && osName != "linux" {
		arch = "arm64"
	}
	return osName + "-" + arch, nil
}
