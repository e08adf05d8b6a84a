package invoke

import (
	"reflect"
	"testing"
)

func TestEnvMergeDoesNotLeakBackward(t *testing.T) {
	base := NewEnv(map[string]string{"A": "1", "B": "2"})
	overlay := base.Merge(map[string]string{"B": "override", "C": "3"})

	if got := overlay.Get("B"); got != "override" {
		t.Errorf("overlay B = %q, want override", got)
	}
	if got := overlay.Get("C"); got != "3" {
		t.Errorf("overlay C = %q, want 3", got)
	}
	// The base stays untouched.
	if got := base.Get("B"); got != "2" {
		t.Errorf("base B = %q, want 2", got)
	}
	if got := base.Get("C"); got != "" {
		t.Errorf("base C = %q, want empty", got)
	}
}

func TestEnvSlice(t *testing.T) {
	env := NewEnv(map[string]string{"B": "2", "A": "1"})
	want := []string{"A=1", "B=2"}
	if got := env.Slice(); !reflect.DeepEqual(got, want) {
		t.Errorf("Slice = %v, want %v", got, want)
	}
}

func TestExpand(t *testing.T) {
	env := NewEnv(map[string]string{"FOO": "bar", "N": "4"})
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"${FOO}", "bar"},
		{"-j${N} ${FOO}/x", "-j4 bar/x"},
		// Unknown variables stay verbatim so the failure is visible in
		// the log instead of silently collapsing to an empty string.
		{"${CMAKE_BUILD_TOOL}", "${CMAKE_BUILD_TOOL}"},
		{"${unclosed", "${unclosed"},
	}
	for _, tt := range tests {
		if got := env.Expand(tt.in); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewEnvCopies(t *testing.T) {
	src := map[string]string{"A": "1"}
	env := NewEnv(src)
	src["A"] = "mutated"
	if got := env.Get("A"); got != "1" {
		t.Errorf("env A = %q, want 1", got)
	}
}
