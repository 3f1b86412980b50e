// types.go: Common data types for the package map system
//
// This file contains the shared data model used throughout the package:
// the package descriptor supplied by the host package manager and the
// ordered autoload declaration it carries. Autoload declarations are kept
// as slices rather than maps because the namespace resolution rules depend
// on declaration order.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PluginPackageType is the declared package type that marks a package as a
// Volcano plugin. Packages of any other type are ignored by the generator.
const PluginPackageType = "volcano-plugin"

// LoaderPSR4 is the autoload loader type the namespace resolver understands.
const LoaderPSR4 = "psr-4"

// AutoloadEntry is a single prefix declaration inside a loader block: a
// namespace prefix mapped to one or more relative source paths.
type AutoloadEntry struct {
	Prefix string
	Paths  []string
}

// LoaderBlock groups the entries declared under one loader type
// (for example "psr-4"). Entries preserve declaration order.
type LoaderBlock struct {
	Loader  string
	Entries []AutoloadEntry
}

// Autoload is the ordered autoload declaration of a package manifest.
//
// Both the loader blocks and the entries within each block preserve the
// order they appear in the manifest document. The resolver's last-match
// rule and the first-loader restriction both depend on this ordering, so
// Autoload must never be modeled as a Go map.
type Autoload []LoaderBlock

// First returns the first loader block, or nil when the declaration is empty.
func (a Autoload) First() *LoaderBlock {
	if len(a) == 0 {
		return nil
	}
	return &a[0]
}

// UnmarshalJSON decodes an autoload declaration from a JSON object while
// preserving key order, which encoding/json's map decoding would discard.
func (a *Autoload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("autoload: expected object, got %v", tok)
	}

	var out Autoload
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		loader, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("autoload: expected loader type key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		block := LoaderBlock{Loader: loader}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
			entries, err := parseOrderedEntries(trimmed)
			if err != nil {
				return fmt.Errorf("autoload: loader %q: %w", loader, err)
			}
			block.Entries = entries
		}
		// Non-object loader values ("files", "classmap" lists) carry no
		// prefix entries but still occupy their position in loader order.
		out = append(out, block)
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}

	*a = out
	return nil
}

// parseOrderedEntries decodes one loader block object into ordered entries.
func parseOrderedEntries(data []byte) ([]AutoloadEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil { // opening '{'
		return nil, err
	}

	var entries []AutoloadEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		prefix, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected prefix key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		paths, err := decodePathValue(raw)
		if err != nil {
			return nil, fmt.Errorf("prefix %q: %w", prefix, err)
		}
		entries = append(entries, AutoloadEntry{Prefix: prefix, Paths: paths})
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return entries, nil
}

// decodePathValue accepts either a single path string or a list of paths.
func decodePathValue(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty path value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return []string{s}, nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("path value must be a string or list of strings")
	}
}

// MarshalJSON emits the declaration as an object with keys in declaration
// order. Single-path entries are written as plain strings to round-trip the
// common manifest shape.
func (a Autoload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, block := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(block.Loader)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, entry := range block.Entries {
			if j > 0 {
				buf.WriteByte(',')
			}
			prefix, err := json.Marshal(entry.Prefix)
			if err != nil {
				return nil, err
			}
			buf.Write(prefix)
			buf.WriteByte(':')
			var val []byte
			if len(entry.Paths) == 1 {
				val, err = json.Marshal(entry.Paths[0])
			} else {
				val, err = json.Marshal(entry.Paths)
			}
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes an autoload declaration from a YAML mapping node,
// preserving key order via the node's content list.
func (a *Autoload) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("autoload: expected mapping, got yaml kind %d", value.Kind)
	}

	var out Autoload
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		block := LoaderBlock{Loader: keyNode.Value}
		if valNode.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(valNode.Content); j += 2 {
				prefixNode, pathNode := valNode.Content[j], valNode.Content[j+1]
				paths, err := decodeYAMLPathValue(pathNode)
				if err != nil {
					return fmt.Errorf("autoload: loader %q prefix %q: %w", keyNode.Value, prefixNode.Value, err)
				}
				block.Entries = append(block.Entries, AutoloadEntry{
					Prefix: prefixNode.Value,
					Paths:  paths,
				})
			}
		}
		out = append(out, block)
	}

	*a = out
	return nil
}

func decodeYAMLPathValue(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		return []string{s}, nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("path value must be a string or list of strings")
	}
}

// PackageDescriptor is the host package manager's view of one package:
// identity, declared type, version, autoload declaration, and install path.
// Descriptors are immutable for the duration of a scan.
type PackageDescriptor struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Autoload    Autoload `json:"autoload,omitempty" yaml:"autoload,omitempty"`
	InstallPath string   `json:"-" yaml:"-"`
}

// IsPlugin reports whether the descriptor declares the plugin marker type.
func (p PackageDescriptor) IsPlugin() bool {
	return p.Type == PluginPackageType
}
