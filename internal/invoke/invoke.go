// Package invoke builds the argument lists for the three invocation
// styles the pipeline uses: a configure call, a direct build-tool call,
// and a build-tool call routed through the tool's --build wrapper.
// All builders are pure; optional segments are omitted entirely when
// their input is empty, never emitted as empty strings.
package invoke

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Tokenize splits a raw argument string into tokens. Splitting is on
// whitespace with shell-like quoting, so a single logical argument may
// contain spaces. Every raw argument string in the pipeline goes through
// this one function.
func Tokenize(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return shellquote.Split(s)
}

// ConfigureCall builds the configure invocation:
//
//	[bin, -G, generator, (-C, preload)?, (-D, CMAKE_BUILD_TYPE=<bt>)?, extra..., sourceDir]
func ConfigureCall(bin, generator, preload, buildType string, extra []string, sourceDir string) []string {
	args := []string{bin, "-G", generator}
	if preload != "" {
		args = append(args, "-C", preload)
	}
	if buildType != "" {
		args = append(args, "-D", "CMAKE_BUILD_TYPE="+buildType)
	}
	args = append(args, extra...)
	return append(args, sourceDir)
}

// ToolCall builds a direct invocation of the build tool.
func ToolCall(toolBin string, args ...string) []string {
	return append([]string{toolBin}, args...)
}

// BuildCall builds a build-tool invocation routed through the wrapper:
//
//	[bin, --build, buildDir, args...]
func BuildCall(bin, buildDir string, args ...string) []string {
	return append([]string{bin, "--build", buildDir}, args...)
}

// SuiteToolCall builds an invocation of a sibling tool of the suite
// (e.g. the packaging or testing tool) living next to the resolved
// primary binary. windows selects the path separator convention of the
// execution platform, not of the controller.
func SuiteToolCall(primaryBin, toolID string, args []string, windows bool) []string {
	return append([]string{binDir(primaryBin, windows) + toolID}, args...)
}

// binDir strips the last path segment of bin, keeping the trailing
// separator. On Windows both separators are recognized.
func binDir(bin string, windows bool) string {
	idx := -1
	if windows {
		if idx = strings.LastIndexByte(bin, '\\'); idx < 0 {
			idx = strings.LastIndexByte(bin, '/')
		}
	} else {
		idx = strings.LastIndexByte(bin, '/')
	}
	if idx < 0 {
		return ""
	}
	return bin[:idx+1]
}
