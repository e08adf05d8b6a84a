// Package nodefs abstracts the filesystem of the node a tool is installed
// on. All installer file operations go through the FS interface so they can
// be dispatched to wherever the unpacked archive lives; Local is the
// implementation for the controller's own filesystem.
package nodefs

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FS is the set of path-scoped operations the installer needs on a node.
type FS interface {
	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error

	// List returns the names of the entries directly under dir.
	List(dir string) ([]string, error)

	// MoveChildren moves every entry under from into to.
	MoveChildren(from, to string) error

	// ReadFile reads a small text file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a small text file so that a reader never observes
	// a partial write: after a crash the file either has the old content
	// or does not exist.
	WriteFile(path string, data []byte) error

	// Walk walks the whole tree rooted at root.
	Walk(root string, fn fs.WalkDirFunc) error

	// FetchUnpack downloads the archive at url and extracts it into dest.
	FetchUnpack(ctx context.Context, url, dest string) error
}

// Local implements FS on the local filesystem.
type Local struct {
	client *http.Client
}

// NewLocal returns a Local using the given HTTP client for fetches,
// or a 60s-timeout default client when nil.
func NewLocal(client *http.Client) *Local {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Local{client: client}
}

func (l *Local) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (l *Local) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (l *Local) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (l *Local) MoveChildren(from, to string) error {
	entries, err := os.ReadDir(from)
	if err != nil {
		return err
	}
	for _, e := range entries {
		src := filepath.Join(from, e.Name())
		dst := filepath.Join(to, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s to %s: %w", src, dst, err)
		}
	}
	return nil
}

func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (l *Local) WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func (l *Local) Walk(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
