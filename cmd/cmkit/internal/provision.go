package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cmkit/cmkit/internal/catalog"
	"github.com/cmkit/cmkit/internal/config"
	"github.com/cmkit/cmkit/internal/install"
	"github.com/cmkit/cmkit/internal/nodefs"
	"github.com/cmkit/cmkit/internal/platform"
)

// defaultCatalogURL is where the installable-archive catalog lives when
// the config file does not name one.
const defaultCatalogURL = "https://raw.githubusercontent.com/cmkit/catalog/main/cmake.json"

// provision resolves the catalog and makes sure the configured tool is
// installed for the local node, returning the executable path.
func provision(ctx context.Context, cfg *config.Config, logger *log.Logger) (string, error) {
	url := cfg.CatalogURL
	if url == "" {
		url = defaultCatalogURL
	}
	client := &http.Client{Timeout: 60 * time.Second}
	tools, err := catalog.Fetch(ctx, client, url)
	if err != nil {
		return "", err
	}

	root := cfg.InstallRoot
	if root == "" {
		root, err = config.DefaultInstallRoot()
		if err != nil {
			return "", fmt.Errorf("resolve install root: %w", err)
		}
	}

	id := cfg.Build.Tool
	if id == "" || id == "cmake" {
		// A bare tool name picks the newest catalog entry.
		latest, ok := catalog.Latest(tools)
		if !ok {
			return "", fmt.Errorf("catalog at %s is empty", url)
		}
		id = latest.ID
	}

	osName, arch := platform.Node()
	installer := install.New(nodefs.NewLocal(client), root, logger)
	return installer.Ensure(ctx, id, osName, arch, tools)
}
