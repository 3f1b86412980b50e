// Package packmap maintains the generated package map consumed by the
// Volcano runtime: a mapping from each installed plugin package's primary
// namespace to its install path.
//
// The package is designed to run as an extension of the host package
// manager. After dependency installation completes, the host fires a
// post-install hook; the Generator re-scans every installed plugin package
// plus the project's local packages directory, resolves each package's
// namespace from its autoload declaration, and rewrites the map artifact
// atomically.
//
// Key Features:
//   - Namespace resolution from PSR-4 style autoload declarations with an
//     explicit, ordered rule list
//   - Full idempotent regeneration of the map artifact (write-then-rename)
//   - Legacy per-package incremental updates for older hook wiring
//   - Local package directory scanning with manifest parsing (JSON/YAML)
//   - Advisory usage hints when a project has not registered the
//     regeneration hook
//   - Optional watch mode that regenerates on repository changes
//
// Basic Usage:
//
//	gen := packmap.NewGenerator("/proj/vendor", "/proj/plugins", logger)
//	pkgs, err := packmap.LoadInstalledPackages("/proj/vendor")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := gen.Regenerate(ctx, pkgs); err != nil {
//		log.Fatal(err)
//	}
//
// The generated artifact lives at <vendorDir>/volcano-packages.json and is
// fully rewritten on every pass, so removed packages never leave stale
// entries behind.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0
package packmap
