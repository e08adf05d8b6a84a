package invoke

import (
	"maps"
	"os"
	"sort"
	"strings"
)

// Expander substitutes ${VAR}-style placeholders in s against some
// environment. The pipeline never implements its own substitution rules;
// the hosting runtime supplies them through this type.
type Expander func(s string) string

// Env is an immutable environment mapping. Stages extend it by producing
// overlays with Merge instead of mutating in place, so step-local
// overrides never leak backward into earlier stages.
type Env struct {
	vars map[string]string
}

// NewEnv returns an Env over a copy of vars.
func NewEnv(vars map[string]string) Env {
	return Env{vars: maps.Clone(vars)}
}

// OSEnv returns the current process environment as an Env.
func OSEnv() Env {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return Env{vars: vars}
}

// Get returns the value of key, or "".
func (e Env) Get(key string) string {
	return e.vars[key]
}

// Set returns a copy of e with key set to value.
func (e Env) Set(key, value string) Env {
	return e.Merge(map[string]string{key: value})
}

// Merge returns a new Env with overlay applied on top of e.
func (e Env) Merge(overlay map[string]string) Env {
	merged := maps.Clone(e.vars)
	if merged == nil {
		merged = make(map[string]string, len(overlay))
	}
	maps.Copy(merged, overlay)
	return Env{vars: merged}
}

// Slice returns the environment as sorted KEY=VALUE pairs for process
// launch.
func (e Env) Slice() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e.vars[k])
	}
	return out
}

// Expand substitutes ${VAR} placeholders in s from e. Unknown variables
// are left verbatim so a missing value surfaces visibly in the log.
func (e Env) Expand(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "${")
		if i < 0 {
			break
		}
		j := strings.Index(s[i:], "}")
		if j < 0 {
			break
		}
		name := s[i+2 : i+j]
		b.WriteString(s[:i])
		if v, ok := e.vars[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(s[i : i+j+1])
		}
		s = s[i+j+1:]
	}
	b.WriteString(s)
	return b.String()
}
