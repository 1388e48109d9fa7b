// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches license metadata from the npm registry
// (https://registry.npmjs.org):
//
//	GET https://registry.npmjs.org/{name}/{version}
//
// Scoped package names are percent-encoded ("@scope/pkg" becomes
// "%40scope%2Fpkg"). Range versions like "*" resolve through the
// packument's dist-tags to the latest published version.
package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/licensegate/pkg/registry"
)

// Client provides access to the npm registry API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates an npm registry client. Pass nil to use a default
// HTTP client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		Client:  registry.NewClient(httpClient, nil),
		baseURL: "https://registry.npmjs.org",
	}
}

type versionResponse struct {
	License string `json:"license"`
}

type packumentResponse struct {
	DistTags map[string]string         `json:"dist-tags"`
	Versions map[string]versionResponse `json:"versions"`
}

// FetchLicense retrieves the license of an npm package version. Exact
// versions hit the version endpoint directly; empty or wildcard
// versions resolve to the latest dist-tag. An unknown package or a
// missing license field reports found=false.
func (c *Client) FetchLicense(ctx context.Context, name, version string) (string, bool, error) {
	escaped := escapeName(name)
	if version == "" || version == "*" || version == "latest" {
		return c.fetchLatest(ctx, escaped)
	}

	var data versionResponse
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, escaped, version)
	if err := c.GetJSON(ctx, url, &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if data.License == "" {
		return "", false, nil
	}
	return data.License, true, nil
}

func (c *Client) fetchLatest(ctx context.Context, escaped string) (string, bool, error) {
	var data packumentResponse
	if err := c.GetJSON(ctx, fmt.Sprintf("%s/%s", c.baseURL, escaped), &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	latest := data.DistTags["latest"]
	if latest == "" {
		return "", false, nil
	}
	entry, ok := data.Versions[latest]
	if !ok || entry.License == "" {
		return "", false, nil
	}
	return entry.License, true, nil
}

// escapeName percent-encodes a package name for use in a registry URL.
// Scoped names keep their "@scope/name" shape but with the reserved
// characters escaped.
func escapeName(name string) string {
	name = strings.ReplaceAll(name, "@", "%40")
	return strings.ReplaceAll(name, "/", "%2F")
}
