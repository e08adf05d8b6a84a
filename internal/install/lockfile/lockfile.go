// Package lockfile provides a file-based mutex so concurrent installs
// into the same destination on one node do not interleave their
// check-then-fetch sequences.
package lockfile

import (
	"fmt"
	"os"
)

// Mutex is a mutual-exclusion lock backed by a file.
type Mutex struct {
	path string
}

// MutexAt returns a Mutex backed by the file at path.
func MutexAt(path string) *Mutex {
	return &Mutex{path: path}
}

// Lock acquires the lock, blocking until it is available, and returns the
// function that releases it.
func (m *Mutex) Lock() (unlock func(), err error) {
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	if err := lock(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	return func() {
		funlock(f)
		f.Close()
	}, nil
}
