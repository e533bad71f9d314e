// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"grimm.is/constructdoc/internal/errors"
)

var (
	// construct.yaml keys are lower snake_case.
	keyNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	// Characters that have no business in a generated file's path
	controlChars = []string{"\x00", "\n", "\r", "\t"}
)

// ValidateKeyName validates a construct.yaml key name.
func ValidateKeyName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "key name cannot be empty")
	}

	if !keyNameRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid key name: %s (must be lower snake_case)", name)
	}

	return nil
}

// ValidateOutputPath validates a document destination. Relative paths may not
// climb out of the repository root.
func ValidateOutputPath(path string) error {
	if path == "" {
		return errors.New(errors.KindValidation, "output path cannot be empty")
	}

	for _, char := range controlChars {
		if strings.Contains(path, char) {
			return errors.Errorf(errors.KindValidation, "output path contains control character %q", char)
		}
	}

	if filepath.IsAbs(path) {
		return nil
	}

	// Reject path traversal attempts
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return errors.Errorf(errors.KindValidation, "path traversal not allowed: %s", path)
		}
	}

	if filepath.Clean(path) == "." {
		return errors.Errorf(errors.KindValidation, "output path is a directory: %s", path)
	}

	return nil
}

// ValidateAllowlist checks if a value is in an allowed list
func ValidateAllowlist(value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return errors.Errorf(errors.KindValidation, "invalid value: %s (must be one of: %s)", value, strings.Join(allowed, ", "))
}
