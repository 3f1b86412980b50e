// resolver_test.go: Namespace resolution rule coverage
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func psr4(entries ...AutoloadEntry) Autoload {
	return Autoload{{Loader: LoaderPSR4, Entries: entries}}
}

func TestResolveNamespace_SingleEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    AutoloadEntry
		expected string
	}{
		{
			name:     "SrcPath",
			entry:    AutoloadEntry{Prefix: `Acme\Plugin\`, Paths: []string{"src/"}},
			expected: "Acme/Plugin",
		},
		{
			name:     "ArbitraryPath",
			entry:    AutoloadEntry{Prefix: `Vendor\Thing\`, Paths: []string{"lib/code/"}},
			expected: "Vendor/Thing",
		},
		{
			name:     "RootPath",
			entry:    AutoloadEntry{Prefix: `Solo\`, Paths: []string{""}},
			expected: "Solo",
		},
		{
			name:     "PathListIgnoredForSingleEntry",
			entry:    AutoloadEntry{Prefix: `Multi\Path\`, Paths: []string{"a/", "b/"}},
			expected: "Multi/Path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := PackageDescriptor{Name: "acme/plugin", Autoload: psr4(tt.entry)}
			ns, err := ResolveNamespace(pkg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ns)
		})
	}
}

func TestResolveNamespace_SrcRule(t *testing.T) {
	tests := []struct {
		name     string
		srcPath  string
		expected string
	}{
		{name: "Plain", srcPath: "src", expected: "Src/Winner"},
		{name: "TrailingSlash", srcPath: "src/", expected: "Src/Winner"},
		{name: "DotSlash", srcPath: "./src", expected: "Src/Winner"},
		{name: "DotSlashTrailing", srcPath: "./src/", expected: "Src/Winner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := PackageDescriptor{
				Name: "acme/multi",
				Autoload: psr4(
					AutoloadEntry{Prefix: `Other\First\`, Paths: []string{"lib/"}},
					AutoloadEntry{Prefix: `Src\Winner\`, Paths: []string{tt.srcPath}},
					AutoloadEntry{Prefix: `Other\Last\`, Paths: []string{"extra/"}},
				),
			}
			ns, err := ResolveNamespace(pkg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ns)
		})
	}

	t.Run("SrcInPathList", func(t *testing.T) {
		pkg := PackageDescriptor{
			Name: "acme/multi",
			Autoload: psr4(
				AutoloadEntry{Prefix: `Other\`, Paths: []string{"lib/"}},
				AutoloadEntry{Prefix: `Listed\`, Paths: []string{"generated/", "src/"}},
			),
		}
		ns, err := ResolveNamespace(pkg)
		require.NoError(t, err)
		assert.Equal(t, "Listed", ns)
	})

	t.Run("SrcSubdirectoryDoesNotMatch", func(t *testing.T) {
		pkg := PackageDescriptor{
			Name: "acme/multi",
			Autoload: psr4(
				AutoloadEntry{Prefix: `Deep\`, Paths: []string{"src/deep/"}},
				AutoloadEntry{Prefix: `Root\`, Paths: []string{"."}},
			),
		}
		ns, err := ResolveNamespace(pkg)
		require.NoError(t, err)
		assert.Equal(t, "Root", ns, "src/deep/ is not a src directory; root rule should decide")
	})
}

func TestResolveNamespace_RootRule_LastMatchWins(t *testing.T) {
	// Two entries map to the package root; declaration order decides and
	// the later one wins.
	pkg := PackageDescriptor{
		Name: "acme/rooted",
		Autoload: psr4(
			AutoloadEntry{Prefix: `First\Root\`, Paths: []string{""}},
			AutoloadEntry{Prefix: `Middle\`, Paths: []string{"lib/"}},
			AutoloadEntry{Prefix: `Second\Root\`, Paths: []string{"."}},
		),
	}
	ns, err := ResolveNamespace(pkg)
	require.NoError(t, err)
	assert.Equal(t, "Second/Root", ns)

	// Reversed declaration order flips the winner.
	pkg.Autoload = psr4(
		AutoloadEntry{Prefix: `Second\Root\`, Paths: []string{"."}},
		AutoloadEntry{Prefix: `Middle\`, Paths: []string{"lib/"}},
		AutoloadEntry{Prefix: `First\Root\`, Paths: []string{""}},
	)
	ns, err = ResolveNamespace(pkg)
	require.NoError(t, err)
	assert.Equal(t, "First/Root", ns)
}

func TestResolveNamespace_Failures(t *testing.T) {
	tests := []struct {
		name     string
		autoload Autoload
	}{
		{
			name:     "NoAutoload",
			autoload: nil,
		},
		{
			name: "FirstLoaderNotPSR4",
			autoload: Autoload{
				{Loader: "classmap", Entries: []AutoloadEntry{{Prefix: `Ignored\`, Paths: []string{"src/"}}}},
				{Loader: LoaderPSR4, Entries: []AutoloadEntry{{Prefix: `WouldMatch\`, Paths: []string{"src/"}}}},
			},
		},
		{
			name:     "EmptyPSR4Block",
			autoload: Autoload{{Loader: LoaderPSR4}},
		},
		{
			name: "NoRuleMatches",
			autoload: psr4(
				AutoloadEntry{Prefix: `A\`, Paths: []string{"lib/"}},
				AutoloadEntry{Prefix: `B\`, Paths: []string{"code/"}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := PackageDescriptor{Name: "acme/broken", Autoload: tt.autoload}
			ns, err := ResolveNamespace(pkg)
			require.Error(t, err)
			assert.Empty(t, ns)
			assert.Contains(t, err.Error(), "acme/broken",
				"resolution errors must name the offending package")
		})
	}
}

func TestNormalizeNamespace(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{`Acme\Plugin\`, "Acme/Plugin"},
		{`\Leading\Slash\`, "Leading/Slash"},
		{"Already/Slashed/", "Already/Slashed"},
		{"Plain", "Plain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeNamespace(tt.in), "input %q", tt.in)
	}
}
