// repository.go: Reader for the host package manager's installed snapshot
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// InstalledFileName is the snapshot the host package manager maintains in
// the vendor directory, listing every installed package descriptor.
const InstalledFileName = "installed.json"

type installedFile struct {
	Packages []PackageDescriptor `json:"packages"`
}

// LoadInstalledPackages reads the installed package snapshot from the
// vendor directory. A missing snapshot is an empty repository, not an
// error; a malformed one fails with a coded error.
func LoadInstalledPackages(vendorDir string) ([]PackageDescriptor, error) {
	path := filepath.Join(vendorDir, InstalledFileName)
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the configured vendor dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewRepositoryReadError(path, err)
	}

	var f installedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, NewRepositoryParseError(path, err)
	}
	return f.Packages, nil
}

// WriteInstalledPackages writes the installed snapshot. The host package
// manager owns this file in production; the writer exists for tooling and
// tests that stand in for the host.
func WriteInstalledPackages(vendorDir string, packages []PackageDescriptor) error {
	if err := os.MkdirAll(vendorDir, 0o755); err != nil {
		return NewOutputDirError(vendorDir, err)
	}
	path := filepath.Join(vendorDir, InstalledFileName)
	data, err := json.MarshalIndent(installedFile{Packages: packages}, "", "    ")
	if err != nil {
		return NewRepositoryParseError(path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return NewRepositoryReadError(path, err)
	}
	return nil
}
