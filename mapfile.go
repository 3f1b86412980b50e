// mapfile.go: The generated package map artifact and its reader/writer
//
// The artifact is a flat JSON document mapping namespace to install path:
//
//	{
//	    "packages": {
//	        "Acme/Plugin": "vendor/acme/plugin/"
//	    }
//	}
//
// Paths are forward-slashed on every host OS and written relative to the
// project base directory when they fall under it, so the artifact stays
// relocatable if the project root moves. The writer always replaces the
// whole file via write-then-rename; a crash mid-write leaves the previous
// valid file intact.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MapFileName is the name of the generated artifact inside the vendor dir.
const MapFileName = "volcano-packages.json"

// PackageMap is the in-memory form of the generated artifact.
type PackageMap struct {
	Packages map[string]string `json:"packages"`
}

// NewPackageMap creates an empty package map.
func NewPackageMap() *PackageMap {
	return &PackageMap{Packages: make(map[string]string)}
}

// Set records or replaces the path for a namespace.
func (m *PackageMap) Set(namespace, path string) {
	m.Packages[namespace] = path
}

// Remove deletes a namespace entry if present.
func (m *PackageMap) Remove(namespace string) {
	delete(m.Packages, namespace)
}

// SortedNamespaces returns the namespaces in ascending byte order, the
// order entries appear in the serialized artifact.
func (m *PackageMap) SortedNamespaces() []string {
	names := make([]string, 0, len(m.Packages))
	for ns := range m.Packages {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// Serialize renders the artifact bytes. encoding/json writes map keys in
// sorted byte order, which gives the deterministic namespace ordering the
// artifact requires for stable diffs; SortedNamespaces and the generator
// tests pin that property.
func (m *PackageMap) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadPackageMap loads an existing map artifact.
//
// A missing file yields an empty map (the artifact is created on first
// need); a present but malformed file yields a coded error so callers never
// silently overwrite a corrupt-but-intentional file.
func ReadPackageMap(path string) (*PackageMap, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is owned by this subsystem
	if err != nil {
		if os.IsNotExist(err) {
			return NewPackageMap(), nil
		}
		return nil, NewMapFileReadError(path, err)
	}

	var m PackageMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, NewMapFileCorruptError(path, err)
	}
	if m.Packages == nil {
		return nil, NewMapFileCorruptError(path, nil)
	}
	return &m, nil
}

// WritePackageMap writes the artifact atomically: the serialized bytes go
// to a temp file in the target directory, which is then renamed over the
// destination. The directory is created first if missing. Concurrent
// readers only ever observe a complete file.
func WritePackageMap(path string, m *PackageMap) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewOutputDirError(dir, err)
	}

	data, err := m.Serialize()
	if err != nil {
		return NewMapFileWriteError(path, err)
	}

	tmp, err := os.CreateTemp(dir, ".volcano-packages-*")
	if err != nil {
		return NewMapFileWriteError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return NewMapFileWriteError(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return NewMapFileWriteError(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return NewMapFileWriteError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return NewMapFileWriteError(path, err)
	}
	return nil
}

// NormalizeMapPath converts a filesystem path to the form stored in the
// artifact: forward slashes and a single trailing slash.
func NormalizeMapPath(path string) string {
	p := filepath.ToSlash(path)
	return strings.TrimRight(p, "/") + "/"
}

// RelocatablePath rewrites an install path for the artifact. Paths under
// baseDir are written relative to it so the artifact survives a project
// move; anything else stays absolute. Output is always forward-slashed
// with a trailing slash.
func RelocatablePath(baseDir, path string) string {
	cleanBase := filepath.Clean(baseDir)
	cleanPath := filepath.Clean(path)

	if rel, err := filepath.Rel(cleanBase, cleanPath); err == nil {
		slashRel := filepath.ToSlash(rel)
		if slashRel != ".." && !strings.HasPrefix(slashRel, "../") && slashRel != "." {
			return NormalizeMapPath(slashRel)
		}
	}
	return NormalizeMapPath(cleanPath)
}
