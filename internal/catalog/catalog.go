// Package catalog loads the JSON catalog of installable tool archives.
//
// The catalog is untrusted remote data: unknown fields are ignored and a
// missing list decodes to an empty slice rather than an error.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Variant is one platform-specific downloadable archive of a tool.
type Variant struct {
	URL  string `json:"url"`
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// Tool is one logical installable tool (e.g. a specific CMake version)
// with its per-platform variants in publication order.
type Tool struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
}

type document struct {
	List []Tool `json:"list"`
}

// Decode parses a catalog document.
func Decode(data []byte) ([]Tool, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.List, nil
}

// Fetch downloads and decodes the catalog at url.
func Fetch(ctx context.Context, client *http.Client, url string) ([]Tool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog %s: unexpected status: %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", url, err)
	}
	return Decode(data)
}

// Find returns the tool with the given id, searching in catalog order.
func Find(tools []Tool, id string) (Tool, bool) {
	for _, t := range tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}
