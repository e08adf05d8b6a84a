package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cmkit/cmkit/internal/nodefs"
)

// Errors reported when an unpacked archive does not have the expected
// <top>/bin/<exe> plus <top>/share layout.
var (
	ErrAmbiguousLayout = errors.New("multiple candidates for tool executable")
	ErrNoBinary        = errors.New("no candidate for tool executable")
)

// ScanRoot inspects the tree unpacked at root and locates the directory
// that holds the runnable tool: the single directory below a top-level
// entry matching "cmake-<id>-*" that contains both bin/<exe> and a share
// directory.
//
// Vendor archives nest the payload under a version-specific subdirectory,
// sometimes with extra metadata alongside, so the whole tree is scanned.
// The scan runs entirely through the node filesystem abstraction; it never
// assumes the archive is on the controller's own disk.
func ScanRoot(fsys nodefs.FS, root, id, exe string) (string, error) {
	prefix := "cmake-" + id + "-"

	var binaries []string
	var shareDirs []string
	err := fsys.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil || rel == "." {
			return nil
		}
		top, _, _ := strings.Cut(rel, string(filepath.Separator))
		if !strings.HasPrefix(top, prefix) {
			return nil
		}
		if d.IsDir() {
			if filepath.Base(rel) == "share" {
				shareDirs = append(shareDirs, rel)
			}
			return nil
		}
		if filepath.Base(rel) == exe && filepath.Base(filepath.Dir(rel)) == "bin" {
			binaries = append(binaries, rel)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", root, err)
	}

	if len(binaries) > 1 {
		return "", fmt.Errorf("unknown layout of archive at %s: %w: %v",
			root, ErrAmbiguousLayout, binaries)
	}
	if len(binaries) == 0 {
		return "", fmt.Errorf("unknown layout of archive at %s: %w", root, ErrNoBinary)
	}

	// The executable sits at <top>/bin/<exe>; its grandparent is the
	// candidate root. Only trust it if a sibling share directory exists.
	top := filepath.Dir(filepath.Dir(binaries[0]))
	share := filepath.Join(top, "share")
	for _, d := range shareDirs {
		if d == share {
			return filepath.Join(root, top), nil
		}
	}
	return "", fmt.Errorf("unknown layout of archive at %s: no share directory next to %s: %w",
		root, binaries[0], ErrNoBinary)
}
