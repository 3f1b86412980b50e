// installer.go: The custom installer registered with the host package manager
//
// The installer is the glue between the host's extension points and the
// map machinery: it claims packages of the plugin marker type, computes
// their install paths, and subscribes the regeneration and legacy
// incremental handlers to the lifecycle events.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"context"
	"path/filepath"
)

// Installer handles packages of the plugin marker type on behalf of the
// host package manager.
type Installer struct {
	generator *Generator
	hooks     *Hooks
	logger    Logger
}

// NewInstaller wires an installer around a generator and subscribes the
// default handlers:
//
//   - post-install / post-update: full regeneration from the installed
//     snapshot (canonical path)
//   - post-package-install / post-package-update: legacy incremental upsert
//   - post-package-uninstall: legacy incremental removal
//
// Running the bulk and per-package handlers side by side is idempotent;
// both converge on the same artifact for the same package set.
func NewInstaller(generator *Generator, logger Logger) *Installer {
	if logger == nil {
		logger = DefaultLogger()
	}
	inst := &Installer{
		generator: generator,
		hooks:     NewHooks(logger),
		logger:    logger,
	}

	inst.hooks.Subscribe(EventPostInstall, inst.regenerateHandler)
	inst.hooks.Subscribe(EventPostUpdate, inst.regenerateHandler)
	inst.hooks.Subscribe(EventPostPackageInstall, inst.upsertHandler)
	inst.hooks.Subscribe(EventPostPackageUpdate, inst.upsertHandler)
	inst.hooks.Subscribe(EventPostPackageUninstall, inst.removeHandler)

	return inst
}

// Hooks exposes the registry so the host can dispatch events into it.
func (inst *Installer) Hooks() *Hooks {
	return inst.hooks
}

// SupportsType reports whether this installer claims the given declared
// package type.
func (inst *Installer) SupportsType(packageType string) bool {
	return packageType == PluginPackageType
}

// InstallPath returns the install location for a plugin package:
// <vendorDir>/<package-name>.
func (inst *Installer) InstallPath(pkg PackageDescriptor) string {
	return filepath.Join(inst.generator.VendorDir(), filepath.FromSlash(pkg.Name))
}

// regenerateHandler rebuilds the whole artifact from the installed snapshot
// plus the local packages directory.
func (inst *Installer) regenerateHandler(ctx context.Context, hook HookContext) error {
	packages, err := LoadInstalledPackages(inst.generator.VendorDir())
	if err != nil {
		return err
	}
	return inst.generator.Regenerate(ctx, packages)
}

// upsertHandler is the legacy per-package path: resolve the one package's
// namespace and mutate its entry in place.
func (inst *Installer) upsertHandler(ctx context.Context, hook HookContext) error {
	pkg := hook.Package
	if pkg == nil || !pkg.IsPlugin() {
		return nil
	}
	namespace, err := ResolveNamespace(*pkg)
	if err != nil {
		return err
	}
	installPath := pkg.InstallPath
	if installPath == "" {
		installPath = inst.InstallPath(*pkg)
	}
	path := RelocatablePath(inst.generator.BaseDir(), installPath)
	inst.logger.Debug("Incremental map update",
		"package", pkg.Name,
		"namespace", namespace,
		"path", path)
	return UpsertMapEntry(inst.generator.MapFilePath(), namespace, path)
}

// removeHandler is the legacy uninstall path: drop the package's entry.
func (inst *Installer) removeHandler(ctx context.Context, hook HookContext) error {
	pkg := hook.Package
	if pkg == nil || !pkg.IsPlugin() {
		return nil
	}
	namespace, err := ResolveNamespace(*pkg)
	if err != nil {
		return err
	}
	inst.logger.Debug("Incremental map removal",
		"package", pkg.Name,
		"namespace", namespace)
	return RemoveMapEntry(inst.generator.MapFilePath(), namespace)
}
