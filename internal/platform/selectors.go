// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package platform

import "sort"

// Selectors evaluates the selector namespace for a platform identifier.
// Every selector name is always present; only the values depend on id.
func Selectors(id string) (map[string]bool, error) {
	osName, arch, err := Parse(id)
	if err != nil {
		return nil, err
	}

	return map[string]bool{
		"linux":   osName == "linux",
		"linux32": id == "linux-32",
		"linux64": id == "linux-64",
		"armv7l":  id == "linux-armv7l",
		"aarch64": id == "linux-aarch64",
		"ppc64le": id == "linux-ppc64le",
		"arm64":   arch == "arm64",
		"s390x":   id == "linux-s390x",
		"x86":     arch == "32" || arch == "64",
		"x86_64":  arch == "64",
		"osx":     osName == "osx",
		"unix":    osName == "linux" || osName == "osx",
		"win":     osName == "win",
		"win32":   id == "win-32",
		"win64":   id == "win-64",
	}, nil
}

// Matching returns the names of the selectors that are true for id, sorted.
func Matching(id string) ([]string, error) {
	sel, err := Selectors(id)
	if err != nil {
		return nil, err
	}
	var names []string
	for name, ok := range sel {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
