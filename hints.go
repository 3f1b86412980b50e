// hints.go: Advisory usage hints for project maintainers
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RegenerateHookCommand is the script line a project registers to keep the
// package map fresh after dependency installation.
const RegenerateHookCommand = "volcano-packmap regenerate"

// ProjectTypeApplication is the manifest type of a deployable application,
// the only project kind the usage hint applies to. Libraries and plugins
// are consumed by an application that owns the hook wiring.
const ProjectTypeApplication = "project"

// hookEvents are the lifecycle events the regeneration hook may be
// registered under; any one of them satisfies the check.
var hookEvents = []string{"post-install", "post-update"}

const (
	hintBoxWidth  = 76
	hintWrapWidth = 68
)

var (
	hintBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 3).
			Width(hintBoxWidth)

	hintTextStyle = lipgloss.NewStyle().
			Width(hintWrapWidth)
)

// HintSession owns the fired-once state of the advisory check. The host
// constructs one session per process and passes it wherever the check runs,
// keeping the "warned already" flag explicit instead of hiding it in
// package-level state.
type HintSession struct {
	warned bool
}

// NewHintSession creates a fresh session that has not warned yet.
func NewHintSession() *HintSession {
	return &HintSession{}
}

// Warned reports whether the session already emitted the hint.
func (s *HintSession) Warned() bool {
	return s.warned
}

// CheckRegenerateHook inspects the enclosing project's manifest and, when
// the project is an application that has not registered the regeneration
// hook under any install lifecycle event, writes a one-time advisory box to
// out. It returns whether the warning was emitted this call.
//
// The check is purely advisory: it never blocks installation and fires at
// most once per session.
func (s *HintSession) CheckRegenerateHook(project *Manifest, out io.Writer) bool {
	if s.warned || project == nil || out == nil {
		return false
	}
	if project.Type != ProjectTypeApplication {
		return false
	}
	if hasRegenerateHook(project.Scripts) {
		return false
	}

	s.warned = true
	fmt.Fprintln(out, renderHintBox(hintMessage(project.Name)))
	return true
}

// hasRegenerateHook reports whether any install lifecycle event registers
// the regeneration hook command.
func hasRegenerateHook(scripts map[string]ScriptList) bool {
	for _, event := range hookEvents {
		for _, line := range scripts[event] {
			if strings.Contains(line, RegenerateHookCommand) {
				return true
			}
		}
	}
	return false
}

func hintMessage(projectName string) string {
	name := projectName
	if name == "" {
		name = "your project"
	}
	return fmt.Sprintf(
		"The package map for %s is not kept up to date automatically. "+
			"Plugin packages will not be registered with the Volcano runtime "+
			"until the map is regenerated.\n\n"+
			"Add the regeneration hook to the \"scripts\" section of your "+
			"project manifest:\n\n"+
			"    \"post-update\": [\"%s\"]\n\n"+
			"The hook runs after every dependency installation and rewrites "+
			"the map in one pass.",
		name, RegenerateHookCommand)
}

// renderHintBox wraps the message to the advisory column width and frames
// it in a bordered box.
func renderHintBox(message string) string {
	return hintBoxStyle.Render(hintTextStyle.Render(message))
}
