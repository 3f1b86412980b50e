// errors.go: structured error definitions for the package map system
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"github.com/agilira/go-errors"
)

// Error codes for the package map system
const (
	// Manifest errors (1000-1099)
	ErrCodeManifestRead   = "PACKMAP_1001"
	ErrCodeManifestParse  = "PACKMAP_1002"
	ErrCodeManifestFormat = "PACKMAP_1003"

	// Namespace resolution errors (1100-1199)
	ErrCodeNamespaceResolution = "PACKMAP_1101"

	// Map artifact errors (1200-1299)
	ErrCodeMapFileCorrupt = "PACKMAP_1201"
	ErrCodeMapFileRead    = "PACKMAP_1202"
	ErrCodeMapFileWrite   = "PACKMAP_1203"
	ErrCodeOutputDir      = "PACKMAP_1204"

	// Repository errors (1300-1399)
	ErrCodeRepositoryRead  = "PACKMAP_1301"
	ErrCodeRepositoryParse = "PACKMAP_1302"

	// Hook and watcher errors (1400-1499)
	ErrCodeHookDispatch = "PACKMAP_1401"
	ErrCodeWatcherStart = "PACKMAP_1402"
)

// Manifest error constructors

func NewManifestReadError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestRead, "Manifest read error").
		WithUserMessage("Failed to read the package manifest file").
		WithContext("manifest_path", path).
		WithSeverity("error")
}

func NewManifestParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestParse, "Manifest parse error").
		WithUserMessage("The package manifest is not valid JSON or YAML").
		WithContext("manifest_path", path).
		WithSeverity("error")
}

func NewManifestFormatError(path string, message string) *errors.Error {
	return errors.New(ErrCodeManifestFormat, "Manifest format error: "+message).
		WithUserMessage("The package manifest is missing required fields").
		WithContext("manifest_path", path).
		WithSeverity("error")
}

// Namespace resolution error constructor

func NewNamespaceResolutionError(packageName string) *errors.Error {
	return errors.New(ErrCodeNamespaceResolution, "Unable to resolve a namespace for package "+packageName).
		WithUserMessage("Correct the autoload declaration of package " + packageName +
			": declare a single psr-4 prefix, or map a prefix to \"src\" or to the package root").
		WithContext("package_name", packageName).
		WithSeverity("error")
}

// Map artifact error constructors

func NewMapFileCorruptError(path string, cause error) *errors.Error {
	const msg = "Package map file is malformed"
	err := errors.New(ErrCodeMapFileCorrupt, msg)
	if cause != nil {
		err = errors.Wrap(cause, ErrCodeMapFileCorrupt, msg)
	}
	return err.
		WithUserMessage("The existing package map could not be parsed; it was left untouched. " +
			"Remove or repair the file and run a full regeneration").
		WithContext("map_path", path).
		WithSeverity("error")
}

func NewMapFileReadError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeMapFileRead, "Package map read error").
		WithUserMessage("Failed to read the existing package map file").
		WithContext("map_path", path).
		WithSeverity("error")
}

func NewMapFileWriteError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeMapFileWrite, "Package map write error").
		WithUserMessage("Failed to write the package map file").
		WithContext("map_path", path).
		WithSeverity("error")
}

func NewOutputDirError(dir string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeOutputDir, "Output directory error").
		WithUserMessage("Failed to create the output directory for the package map").
		WithContext("output_dir", dir).
		WithSeverity("error")
}

// Repository error constructors

func NewRepositoryReadError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeRepositoryRead, "Installed repository read error").
		WithUserMessage("Failed to read the installed package repository").
		WithContext("repository_path", path).
		WithSeverity("error")
}

func NewRepositoryParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeRepositoryParse, "Installed repository parse error").
		WithUserMessage("The installed package repository is not valid JSON").
		WithContext("repository_path", path).
		WithSeverity("error")
}

// Hook and watcher error constructors

func NewHookDispatchError(event string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeHookDispatch, "Hook dispatch error").
		WithUserMessage("A package lifecycle hook handler failed").
		WithContext("event", event).
		WithSeverity("error")
}

func NewWatcherStartError(message string, cause error) *errors.Error {
	err := errors.New(ErrCodeWatcherStart, "Watcher error: "+message)
	if cause != nil {
		err = errors.Wrap(cause, ErrCodeWatcherStart, "Watcher error: "+message)
	}
	return err.
		WithUserMessage("Package map watch mode failed").
		WithSeverity("error")
}
