// Package pypi provides an HTTP client for the PyPI JSON API.
//
// # Overview
//
// This package fetches license metadata from PyPI (https://pypi.org),
// the Python package index:
//
//	GET https://pypi.org/pypi/{name}/{version}/json
//
// When no version is pinned the unversioned endpoint serves the latest
// release. PyPI license metadata is free-form; classifier strings and
// full license texts both appear in the wild, so results pass through
// normalization and classification downstream.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/licensegate/pkg/registry"
)

// Client provides access to the PyPI JSON API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a PyPI client. Pass nil to use a default HTTP
// client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		Client:  registry.NewClient(httpClient, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

type projectResponse struct {
	Info struct {
		License string `json:"license"`
	} `json:"info"`
}

// FetchLicense retrieves the license of a PyPI release. An empty or
// wildcard version queries the latest release. An unknown package or an
// empty license field reports found=false.
func (c *Client) FetchLicense(ctx context.Context, name, version string) (string, bool, error) {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, name)
	if version != "" && version != "*" {
		url = fmt.Sprintf("%s/%s/%s/json", c.baseURL, name, version)
	}

	var data projectResponse
	if err := c.GetJSON(ctx, url, &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	license := strings.TrimSpace(data.Info.License)
	if license == "" {
		return "", false, nil
	}
	return license, true, nil
}
