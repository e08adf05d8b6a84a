package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmkit/cmkit/internal/nodefs"
)

func writeTree(t *testing.T, root string, files []string, dirs []string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanRootSimple(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		[]string{"cmake-3.10.2-linux/bin/cmake"},
		[]string{"cmake-3.10.2-linux/share"},
	)

	got, err := ScanRoot(nodefs.NewLocal(nil), root, "3.10.2", "cmake")
	if err != nil {
		t.Fatalf("ScanRoot: %v", err)
	}
	want := filepath.Join(root, "cmake-3.10.2-linux")
	if got != want {
		t.Errorf("ScanRoot = %q, want %q", got, want)
	}
}

func TestScanRootNested(t *testing.T) {
	// macOS archives nest the payload a few levels down, with vendor
	// metadata alongside.
	root := t.TempDir()
	writeTree(t, root,
		[]string{
			"cmake-3.1.0-Darwin/CMake.app/Contents/bin/cmake",
			"cmake-3.1.0-Darwin/ReadMe.txt",
		},
		[]string{"cmake-3.1.0-Darwin/CMake.app/Contents/share"},
	)

	got, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake")
	if err != nil {
		t.Fatalf("ScanRoot: %v", err)
	}
	want := filepath.Join(root, "cmake-3.1.0-Darwin", "CMake.app", "Contents")
	if got != want {
		t.Errorf("ScanRoot = %q, want %q", got, want)
	}
}

func TestScanRootAmbiguous(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		[]string{
			"cmake-3.1.0-a/bin/cmake",
			"cmake-3.1.0-b/bin/cmake",
		},
		[]string{"cmake-3.1.0-a/share", "cmake-3.1.0-b/share"},
	)

	_, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake")
	if !errors.Is(err, ErrAmbiguousLayout) {
		t.Errorf("ScanRoot err = %v, want ErrAmbiguousLayout", err)
	}
}

func TestScanRootNoBinary(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, nil, []string{"cmake-3.1.0-linux/share"})

	_, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake")
	if !errors.Is(err, ErrNoBinary) {
		t.Errorf("ScanRoot err = %v, want ErrNoBinary", err)
	}
}

func TestScanRootMissingShare(t *testing.T) {
	// Without the share directory alongside bin the layout is not
	// trusted.
	root := t.TempDir()
	writeTree(t, root, []string{"cmake-3.1.0-linux/bin/cmake"}, nil)

	_, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake")
	if !errors.Is(err, ErrNoBinary) {
		t.Errorf("ScanRoot err = %v, want ErrNoBinary", err)
	}
}

func TestScanRootIgnoresForeignTopDirs(t *testing.T) {
	// Unrelated trees in the archive do not confuse the scan.
	root := t.TempDir()
	writeTree(t, root,
		[]string{
			"cmake-3.1.0-linux/bin/cmake",
			"other-1.0/bin/cmake",
		},
		[]string{"cmake-3.1.0-linux/share", "other-1.0/share"},
	)

	got, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake")
	if err != nil {
		t.Fatalf("ScanRoot: %v", err)
	}
	want := filepath.Join(root, "cmake-3.1.0-linux")
	if got != want {
		t.Errorf("ScanRoot = %q, want %q", got, want)
	}
}

func TestScanRootWindowsExecutable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		[]string{"cmake-3.1.0-win32-x86/bin/cmake.exe"},
		[]string{"cmake-3.1.0-win32-x86/share"},
	)

	got, err := ScanRoot(nodefs.NewLocal(nil), root, "3.1.0", "cmake.exe")
	if err != nil {
		t.Fatalf("ScanRoot: %v", err)
	}
	want := filepath.Join(root, "cmake-3.1.0-win32-x86")
	if got != want {
		t.Errorf("ScanRoot = %q, want %q", got, want)
	}
}
