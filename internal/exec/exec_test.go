package exec

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func TestLocalRun(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	code, err := Local{}.Run(context.Background(),
		[]string{"sh", "-c", "echo hello; pwd"}, t.TempDir(), nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(out.String(), "hello\n") {
		t.Errorf("output = %q, want it to start with hello", out.String())
	}
}

func TestLocalRunNonzeroExit(t *testing.T) {
	requireShell(t)
	code, err := Local{}.Run(context.Background(),
		[]string{"sh", "-c", "exit 3"}, t.TempDir(), nil, nil)
	if err != nil {
		t.Fatalf("nonzero exit must not be an error, got %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestLocalRunEnv(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	_, err := Local{}.Run(context.Background(),
		[]string{"sh", "-c", "echo $GREETING"}, t.TempDir(),
		[]string{"GREETING=hi"}, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hi" {
		t.Errorf("GREETING = %q, want hi", got)
	}
}

func TestLocalRunCanceled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Local{}.Run(ctx,
		[]string{"sh", "-c", "sleep 10"}, t.TempDir(), nil, nil)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("Run = %v, want ErrCanceled", err)
	}
}

func TestLocalRunLaunchFailure(t *testing.T) {
	_, err := Local{}.Run(context.Background(),
		[]string{"/nonexistent/binary"}, t.TempDir(), nil, nil)
	if err == nil {
		t.Fatal("launching a missing binary succeeded, want error")
	}
	if errors.Is(err, ErrCanceled) {
		t.Fatal("launch failure reported as cancellation")
	}
}

func TestLocalRunEmptyArgv(t *testing.T) {
	if _, err := (Local{}).Run(context.Background(), nil, "", nil, nil); err == nil {
		t.Fatal("empty argv succeeded, want error")
	}
}
