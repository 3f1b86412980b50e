// generator.go: Full regeneration of the package map artifact
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"context"
	"os"
	"path/filepath"
)

// Generator rewrites the package map artifact from the full set of known
// packages. It is stateless between calls: every regeneration pass rebuilds
// the mapping from scratch, so removed packages never leave stale entries.
//
// Two sources feed a pass:
//   - the host package manager's installed packages (filtered to the plugin
//     marker type, installed under the vendor directory), and
//   - the project's local packages directory, scanned for subdirectories
//     carrying a plugin manifest. Local entries win on namespace collision.
type Generator struct {
	vendorDir string
	localDir  string
	logger    Logger
}

// NewGenerator creates a generator writing into vendorDir and scanning
// localPackagesDir for project-local plugins. localPackagesDir may be empty
// or nonexistent; a nil logger silences output.
func NewGenerator(vendorDir, localPackagesDir string, logger Logger) *Generator {
	if logger == nil {
		logger = DefaultLogger()
	}
	return &Generator{
		vendorDir: vendorDir,
		localDir:  localPackagesDir,
		logger:    logger,
	}
}

// VendorDir returns the vendor directory the generator writes into.
func (g *Generator) VendorDir() string { return g.vendorDir }

// MapFilePath returns the path of the generated artifact.
func (g *Generator) MapFilePath() string {
	return filepath.Join(g.vendorDir, MapFileName)
}

// BaseDir returns the directory paths in the artifact are made relative to:
// the parent of the vendor directory, i.e. the project root.
func (g *Generator) BaseDir() string {
	return filepath.Dir(filepath.Clean(g.vendorDir))
}

// Regenerate rebuilds and atomically rewrites the package map artifact.
//
// Installed packages are filtered to the plugin marker type; each one's
// install path is <vendorDir>/<name>. The local packages directory is
// scanned second, so a local package sharing a namespace with an installed
// one overwrites it. A namespace resolution failure aborts the whole pass;
// the previous artifact stays in place. An empty result still writes a
// valid artifact with an empty mapping.
func (g *Generator) Regenerate(ctx context.Context, packages []PackageDescriptor) error {
	m := NewPackageMap()
	base := g.BaseDir()

	for _, pkg := range packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !pkg.IsPlugin() {
			continue
		}
		namespace, err := ResolveNamespace(pkg)
		if err != nil {
			return err
		}
		installPath := pkg.InstallPath
		if installPath == "" {
			installPath = filepath.Join(g.vendorDir, filepath.FromSlash(pkg.Name))
		}
		m.Set(namespace, RelocatablePath(base, installPath))
		g.logger.Debug("Mapped installed plugin package",
			"package", pkg.Name,
			"namespace", namespace)
	}

	locals, err := g.scanLocalPackages(ctx)
	if err != nil {
		return err
	}
	for _, pkg := range locals {
		namespace, err := ResolveNamespace(pkg)
		if err != nil {
			return err
		}
		m.Set(namespace, RelocatablePath(base, pkg.InstallPath))
		g.logger.Debug("Mapped local plugin package",
			"package", pkg.Name,
			"namespace", namespace,
			"path", pkg.InstallPath)
	}

	if err := WritePackageMap(g.MapFilePath(), m); err != nil {
		return err
	}

	g.logger.Info("Package map regenerated",
		"path", g.MapFilePath(),
		"entries", len(m.Packages))
	return nil
}

// scanLocalPackages walks the immediate subdirectories of the local
// packages directory and returns a descriptor for every one carrying a
// readable plugin manifest. Candidates with unreadable or invalid manifests
// are not plugin packages; they are skipped with a debug log, never an
// error.
func (g *Generator) scanLocalPackages(ctx context.Context) ([]PackageDescriptor, error) {
	if g.localDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(g.localDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewManifestReadError(g.localDir, err)
	}

	var out []PackageDescriptor
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(g.localDir, entry.Name())

		manifestPath, found := FindManifest(dir)
		if !found {
			continue
		}
		manifest, err := ReadManifest(manifestPath)
		if err != nil {
			g.logger.Debug("Skipping local package with unreadable manifest",
				"path", manifestPath,
				"error", err)
			continue
		}
		if manifest.Type != PluginPackageType {
			continue
		}
		out = append(out, manifest.Descriptor(dir))
	}
	return out, nil
}
