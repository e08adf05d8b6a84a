package run

import (
	"fmt"
	"strings"

	"github.com/cmkit/cmkit/internal/config"
	"github.com/cmkit/cmkit/internal/invoke"
)

// Step is one executable stage of the pipeline. New step kinds are added
// by implementing this interface, not discovered dynamically.
type Step interface {
	// Argv builds the argument list against the stage environment.
	Argv(env invoke.Env) ([]string, error)

	// EnvOverlay returns the step-local environment overrides.
	EnvOverlay(env invoke.Env) (map[string]string, error)
}

// buildStep is a user-declared build-tool step: either a direct call to
// the discovered build tool, or a call routed through the wrapper.
type buildStep struct {
	cfg      config.ToolStep
	cmakeBin string
	buildDir string
	expand   invoke.Expander
}

func (s *buildStep) Argv(env invoke.Env) ([]string, error) {
	args, err := invoke.Tokenize(s.expand(s.cfg.Args))
	if err != nil {
		return nil, fmt.Errorf("tokenize step arguments %q: %w", s.cfg.Args, err)
	}
	if s.cfg.WithCmake {
		return invoke.BuildCall(s.cmakeBin, s.buildDir, args...), nil
	}
	// When the build tool was never discovered the macro stays
	// unexpanded, so the failure shows up verbatim in the log.
	toolBin := s.expand("${" + EnvBuildTool + "}")
	return invoke.ToolCall(toolBin, args...), nil
}

func (s *buildStep) EnvOverlay(env invoke.Env) (map[string]string, error) {
	overlay := make(map[string]string, len(s.cfg.Env))
	for _, kv := range s.cfg.Env {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("step environment entry %q is not KEY=VALUE", kv)
		}
		overlay[k] = s.expand(v)
	}
	return overlay, nil
}

// SuiteStep invokes a sibling tool of the suite (packaging, testing)
// found next to the resolved primary binary.
type SuiteStep struct {
	PrimaryBin string
	ToolID     string
	Args       string
	Windows    bool
	Expand     invoke.Expander
}

func (s *SuiteStep) Argv(env invoke.Env) ([]string, error) {
	expand := s.Expand
	if expand == nil {
		expand = env.Expand
	}
	args, err := invoke.Tokenize(expand(s.Args))
	if err != nil {
		return nil, fmt.Errorf("tokenize tool arguments %q: %w", s.Args, err)
	}
	return invoke.SuiteToolCall(s.PrimaryBin, s.ToolID, args, s.Windows), nil
}

func (s *SuiteStep) EnvOverlay(env invoke.Env) (map[string]string, error) {
	return nil, nil
}
