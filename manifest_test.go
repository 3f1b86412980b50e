// manifest_test.go: Manifest file reading and probing
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadManifest_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "volcano.json", `{
		"name": "acme/plugin",
		"type": "volcano-plugin",
		"version": "1.2.3",
		"autoload": {"psr-4": {"Acme\\Plugin\\": "src/"}},
		"scripts": {"post-update": "volcano-packmap regenerate"}
	}`)

	m, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "acme/plugin", m.Name)
	assert.Equal(t, PluginPackageType, m.Type)
	assert.Equal(t, "1.2.3", m.Version)
	require.NotNil(t, m.Autoload.First())
	assert.Equal(t, LoaderPSR4, m.Autoload.First().Loader)
	assert.Equal(t, ScriptList{"volcano-packmap regenerate"}, m.Scripts["post-update"])
}

func TestReadManifest_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "volcano.yaml", `
name: acme/plugin
type: volcano-plugin
autoload:
  psr-4:
    "Acme\\Plugin\\": src/
scripts:
  post-update:
    - echo hi
    - volcano-packmap regenerate
`)

	m, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "acme/plugin", m.Name)
	assert.Equal(t, ScriptList{"echo hi", "volcano-packmap regenerate"}, m.Scripts["post-update"])
}

func TestReadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadManifest(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("Unparseable", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", `:{not anything`)
		_, err := ReadManifest(path)
		assert.Error(t, err)
	})

	t.Run("MissingIdentityFields", func(t *testing.T) {
		path := writeFile(t, dir, "empty.json", `{"version": "1.0.0"}`)
		_, err := ReadManifest(path)
		assert.Error(t, err)
	})
}

func TestFindManifest(t *testing.T) {
	t.Run("PrefersJSON", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "volcano.yaml", "name: x\ntype: volcano-plugin\n")
		jsonPath := writeFile(t, dir, "volcano.json", `{"name": "x", "type": "volcano-plugin"}`)

		found, ok := FindManifest(dir)
		require.True(t, ok)
		assert.Equal(t, jsonPath, found)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, ok := FindManifest(t.TempDir())
		assert.False(t, ok)
	})
}

func TestManifest_Descriptor(t *testing.T) {
	m := &Manifest{
		Name:     "acme/plugin",
		Type:     PluginPackageType,
		Version:  "2.0.0",
		Autoload: psr4(AutoloadEntry{Prefix: `Acme\Plugin\`, Paths: []string{"src/"}}),
	}
	desc := m.Descriptor("/proj/plugins/plugin")
	assert.Equal(t, "acme/plugin", desc.Name)
	assert.Equal(t, "/proj/plugins/plugin", desc.InstallPath)
	assert.True(t, desc.IsPlugin())
}
