// incremental.go: Legacy per-package mutations of the package map
//
// These operations predate the bulk regeneration hook: older project
// wiring mutates one entry per package install/update/uninstall event.
// Full regeneration is the canonical trigger now; running both is harmless
// because both paths serialize through the same writer and produce the
// same final file for the same package set.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

// UpsertMapEntry adds or replaces a single namespace entry in the map
// artifact at mapPath, preserving all other entries. A missing artifact is
// created with just this entry; a malformed one aborts with a coded error
// and the on-disk content is left untouched.
//
// The namespace is normalized the same way the resolver normalizes it and
// the path the same way the generator writes it, so an incremental update
// is byte-compatible with a later full regeneration.
func UpsertMapEntry(mapPath, namespace, path string) error {
	m, err := ReadPackageMap(mapPath)
	if err != nil {
		return err
	}
	m.Set(NormalizeNamespace(namespace), NormalizeMapPath(path))
	return WritePackageMap(mapPath, m)
}

// RemoveMapEntry deletes a single namespace entry from the map artifact,
// preserving all other entries. Removing an absent entry still rewrites the
// file and is not an error. A malformed artifact aborts with a coded error
// and is never overwritten.
func RemoveMapEntry(mapPath, namespace string) error {
	m, err := ReadPackageMap(mapPath)
	if err != nil {
		return err
	}
	m.Remove(NormalizeNamespace(namespace))
	return WritePackageMap(mapPath, m)
}
