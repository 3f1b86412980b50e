// manifest.go: Package manifest reading and parsing (JSON/YAML)
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileNames lists the manifest file names probed inside a package
// directory, in preference order.
var ManifestFileNames = []string{"volcano.json", "volcano.yaml", "volcano.yml"}

// ScriptList holds the command lines registered for one lifecycle event in
// a project manifest. Manifests may declare a single command as a plain
// string or several as a list; both decode into the slice form.
type ScriptList []string

// UnmarshalJSON accepts a string or a list of strings.
func (s *ScriptList) UnmarshalJSON(data []byte) error {
	lines, err := decodePathValue(data)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	*s = lines
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *ScriptList) UnmarshalYAML(node *yaml.Node) error {
	lines, err := decodeYAMLPathValue(node)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	*s = lines
	return nil
}

// Manifest is the parsed content of a package or project manifest file.
//
// Only the fields the package map system consumes are modeled: identity,
// declared type, autoload declaration, and the lifecycle script hooks used
// by the usage-hint check.
type Manifest struct {
	Name     string                `json:"name" yaml:"name"`
	Type     string                `json:"type" yaml:"type"`
	Version  string                `json:"version,omitempty" yaml:"version,omitempty"`
	Autoload Autoload              `json:"autoload,omitempty" yaml:"autoload,omitempty"`
	Scripts  map[string]ScriptList `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// Descriptor converts the manifest into a package descriptor rooted at the
// given install path.
func (m *Manifest) Descriptor(installPath string) PackageDescriptor {
	return PackageDescriptor{
		Name:        m.Name,
		Type:        m.Type,
		Version:     m.Version,
		Autoload:    m.Autoload,
		InstallPath: installPath,
	}
}

// ReadManifest reads and parses a manifest file. JSON is tried first, then
// YAML, matching the formats packages ship in the wild.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - manifest paths come from directory scans
	if err != nil {
		return nil, NewManifestReadError(path, err)
	}

	var manifest Manifest
	if jsonErr := json.Unmarshal(data, &manifest); jsonErr != nil {
		if yamlErr := yaml.Unmarshal(data, &manifest); yamlErr != nil {
			return nil, NewManifestParseError(path, yamlErr)
		}
	}

	if manifest.Name == "" && manifest.Type == "" {
		return nil, NewManifestFormatError(path, "missing name and type fields")
	}

	return &manifest, nil
}

// FindManifest locates a manifest file in the given directory, probing the
// known file names in order. Returns the path and whether one was found.
func FindManifest(dir string) (string, bool) {
	for _, name := range ManifestFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}
