// Package install provisions a tool onto a node: it resolves the
// platform-specific archive, fetches and unpacks it idempotently, and
// normalizes the unpacked layout so the executable always ends up at a
// fixed relative path.
package install

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cmkit/cmkit/internal/catalog"
	"github.com/cmkit/cmkit/internal/install/lockfile"
	"github.com/cmkit/cmkit/internal/nodefs"
	"github.com/cmkit/cmkit/internal/platform"
)

// recordFile holds the URL last successfully installed from. It is the
// only freshness marker: timestamps are never trusted, and the file is
// written as the final act of a successful install so an interrupted
// fetch can not be mistaken for an installed tool.
const recordFile = ".installedFrom"

// Installer installs tools below a fixed root directory on one node.
type Installer struct {
	fs     nodefs.FS
	root   string
	logger *log.Logger
}

// New returns an Installer that installs below root on the node behind fs.
func New(fs nodefs.FS, root string, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.Default()
	}
	return &Installer{fs: fs, root: root, logger: logger}
}

// Ensure makes sure the tool with the given catalog id is installed for a
// node reporting osName/arch, and returns the path of its executable.
// A tool already installed from the resolved variant's URL is left alone.
func (i *Installer) Ensure(ctx context.Context, id, osName, arch string, tools []catalog.Tool) (string, error) {
	tool, ok := catalog.Find(tools, id)
	if !ok {
		return "", fmt.Errorf("no tool with id %q in catalog", id)
	}
	variant, ok := platform.Resolve(osName, arch, tool)
	if !ok {
		return "", fmt.Errorf("%s: no download known for OS %q and arch %q", tool.Name, osName, arch)
	}

	exe := "cmake"
	if platform.FamilyOf(osName) == platform.Windows {
		exe = "cmake.exe"
	}

	// The destination is derived from the id, never the display name, so
	// renaming a configured tool does not trigger a spurious re-download.
	dest := filepath.Join(i.root, sanitize(id))
	if err := i.fs.MkdirAll(i.root); err != nil {
		return "", err
	}

	unlock, err := lockfile.MutexAt(dest + ".lock").Lock()
	if err != nil {
		return "", err
	}
	defer unlock()

	if i.upToDate(dest, variant.URL) {
		return filepath.Join(dest, "bin", exe), nil
	}

	i.logger.Info("unpacking", "tool", tool.Name, "url", variant.URL, "dest", dest)
	if err := i.fs.FetchUnpack(ctx, variant.URL, dest); err != nil {
		return "", err
	}
	// Some unpack layers leave a timestamp marker; it plays no part in
	// the up-to-date check.
	i.fs.RemoveAll(filepath.Join(dest, ".timestamp"))

	i.logger.Info("inspecting unpacked files", "dest", dest)
	top, err := ScanRoot(i.fs, dest, id, exe)
	if err != nil {
		return "", err
	}
	if top != dest {
		if err := i.pullUp(dest, top); err != nil {
			return "", err
		}
	}

	// Trim documentation to reduce footprint; failure is not fatal.
	i.fs.RemoveAll(filepath.Join(dest, "doc"))
	i.fs.RemoveAll(filepath.Join(dest, "man"))

	if err := i.fs.WriteFile(filepath.Join(dest, recordFile), []byte(variant.URL)); err != nil {
		return "", fmt.Errorf("write install record at %s: %w", dest, err)
	}

	return filepath.Join(dest, "bin", exe), nil
}

// upToDate reports whether the install record at dest names url.
func (i *Installer) upToDate(dest, url string) bool {
	data, err := i.fs.ReadFile(filepath.Join(dest, recordFile))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == url
}

// pullUp normalizes extra archive nesting: everything at dest that is not
// an ancestor of top is deleted, then top's children move up into dest.
func (i *Installer) pullUp(dest, top string) error {
	names, err := i.fs.List(dest)
	if err != nil {
		return err
	}
	for _, name := range names {
		entry := filepath.Join(dest, name)
		if entry == top || strings.HasPrefix(top, entry+string(filepath.Separator)) {
			continue
		}
		if err := i.fs.RemoveAll(entry); err != nil {
			return fmt.Errorf("remove %s: %w", entry, err)
		}
	}
	return i.fs.MoveChildren(top, dest)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func sanitize(id string) string {
	return unsafeChars.ReplaceAllString(id, "_")
}
