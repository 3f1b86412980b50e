// resolver.go: Primary namespace resolution from autoload declarations
//
// The resolver determines the single namespace that identifies a plugin
// package for registration in the package map. Resolution is an explicit,
// ordered rule list over the psr-4 entries of the package's autoload
// declaration; the rules and their quirks are documented on each branch so
// behavior stays visible and tested rather than incidental.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"regexp"
	"strings"
)

// srcPathPattern matches a path pointing at a directory literally named
// "src": "src", "src/", "./src" and "./src/".
var srcPathPattern = regexp.MustCompile(`^(\./)?src/?$`)

// ResolveNamespace resolves the primary namespace of a package from its
// autoload declaration. It is a pure function over the descriptor.
//
// Only the first loader block of the declaration is considered, and only
// when its loader type is "psr-4"; a declaration whose first loader is
// anything else fails even if a later psr-4 block would match. This
// mirrors the behavior plugin authors have relied on and is preserved
// deliberately (see DESIGN.md).
//
// Rules, first match wins:
//  1. Exactly one entry: its prefix is the namespace, regardless of path.
//  2. Any entry with a path pointing at a "src" directory: that entry's
//     prefix (first such entry in declaration order).
//  3. Any entry with a path of "" or "." (package root): the LAST such
//     entry's prefix. Later declarations overwrite earlier ones here;
//     last-match-wins is intentional, covered by tests.
//
// When no rule produces a namespace the error names the package and tells
// the maintainer to correct its autoload declaration.
func ResolveNamespace(pkg PackageDescriptor) (string, error) {
	block := pkg.Autoload.First()
	if block == nil || block.Loader != LoaderPSR4 || len(block.Entries) == 0 {
		return "", NewNamespaceResolutionError(pkg.Name)
	}

	if len(block.Entries) == 1 {
		return NormalizeNamespace(block.Entries[0].Prefix), nil
	}

	for _, entry := range block.Entries {
		for _, path := range entry.Paths {
			if srcPathPattern.MatchString(path) {
				return NormalizeNamespace(entry.Prefix), nil
			}
		}
	}

	namespace := ""
	found := false
	for _, entry := range block.Entries {
		for _, path := range entry.Paths {
			if path == "" || path == "." {
				namespace = entry.Prefix
				found = true
			}
		}
	}
	if found {
		return NormalizeNamespace(namespace), nil
	}

	return "", NewNamespaceResolutionError(pkg.Name)
}

// NormalizeNamespace converts backslash separators to forward slashes and
// trims leading and trailing separators, yielding the form used as map keys
// ("Acme\\Plugin\\" becomes "Acme/Plugin").
func NormalizeNamespace(ns string) string {
	return strings.Trim(strings.ReplaceAll(ns, `\`, "/"), "/")
}
