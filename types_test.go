// types_test.go: Ordered autoload declaration parsing
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAutoload_UnmarshalJSON_PreservesOrder(t *testing.T) {
	raw := `{
		"psr-4": {
			"Zeta\\Last\\": ".",
			"Alpha\\Mid\\": "lib/",
			"Beta\\First\\": ""
		},
		"files": ["helpers.php"]
	}`

	var a Autoload
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	require.Len(t, a, 2)

	assert.Equal(t, LoaderPSR4, a[0].Loader)
	require.Len(t, a[0].Entries, 3)
	assert.Equal(t, `Zeta\Last\`, a[0].Entries[0].Prefix)
	assert.Equal(t, `Alpha\Mid\`, a[0].Entries[1].Prefix)
	assert.Equal(t, `Beta\First\`, a[0].Entries[2].Prefix)

	assert.Equal(t, "files", a[1].Loader)
	assert.Empty(t, a[1].Entries, "list-valued loaders carry no prefix entries")
}

func TestAutoload_UnmarshalJSON_PathForms(t *testing.T) {
	raw := `{"psr-4": {"One\\": "src/", "Many\\": ["a/", "b/"]}}`

	var a Autoload
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	require.Len(t, a, 1)
	require.Len(t, a[0].Entries, 2)
	assert.Equal(t, []string{"src/"}, a[0].Entries[0].Paths)
	assert.Equal(t, []string{"a/", "b/"}, a[0].Entries[1].Paths)
}

func TestAutoload_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "NotAnObject", raw: `["psr-4"]`},
		{name: "NumericPathValue", raw: `{"psr-4": {"A\\": 5}}`},
		{name: "NestedObjectPathValue", raw: `{"psr-4": {"A\\": {"x": "y"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Autoload
			assert.Error(t, json.Unmarshal([]byte(tt.raw), &a))
		})
	}
}

func TestAutoload_UnmarshalYAML_PreservesOrder(t *testing.T) {
	raw := `
psr-4:
  "Zeta\\Last\\": "."
  "Alpha\\Mid\\": lib/
  "Beta\\First\\":
    - a/
    - b/
classmap:
  - legacy/
`
	var a Autoload
	require.NoError(t, yaml.Unmarshal([]byte(raw), &a))
	require.Len(t, a, 2)

	assert.Equal(t, LoaderPSR4, a[0].Loader)
	require.Len(t, a[0].Entries, 3)
	assert.Equal(t, `Zeta\Last\`, a[0].Entries[0].Prefix)
	assert.Equal(t, []string{"."}, a[0].Entries[0].Paths)
	assert.Equal(t, []string{"lib/"}, a[0].Entries[1].Paths)
	assert.Equal(t, []string{"a/", "b/"}, a[0].Entries[2].Paths)
	assert.Equal(t, "classmap", a[1].Loader)
}

func TestAutoload_JSONRoundTrip(t *testing.T) {
	original := Autoload{
		{Loader: LoaderPSR4, Entries: []AutoloadEntry{
			{Prefix: `B\`, Paths: []string{"src/"}},
			{Prefix: `A\`, Paths: []string{"lib/", "gen/"}},
		}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Autoload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded, "declaration order must survive a round trip")
}

func TestPackageDescriptor_IsPlugin(t *testing.T) {
	assert.True(t, PackageDescriptor{Type: PluginPackageType}.IsPlugin())
	assert.False(t, PackageDescriptor{Type: "library"}.IsPlugin())
	assert.False(t, PackageDescriptor{}.IsPlugin())
}
