// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate license metadata from crates.io
// (https://crates.io), the Rust community's package registry. The
// version endpoint returns the license declared for the exact published
// version:
//
//	GET https://crates.io/api/v1/crates/{name}/{version}
//
// # User-Agent
//
// The client includes a User-Agent header as requested by crates.io
// API policy.
package crates

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/licensegate/pkg/registry"
)

// Client provides access to the crates.io package registry API.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a crates.io client. Pass nil to use a default HTTP
// client.
func NewClient(httpClient *http.Client) *Client {
	headers := map[string]string{
		"User-Agent": "licensegate/1.0 (https://github.com/matzehuels/licensegate)",
	}
	return &Client{
		Client:  registry.NewClient(httpClient, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

type versionResponse struct {
	Version struct {
		License string `json:"license"`
	} `json:"version"`
}

// FetchLicense retrieves the declared license of a published crate
// version. An unknown crate or version reports found=false.
func (c *Client) FetchLicense(ctx context.Context, name, version string) (string, bool, error) {
	var data versionResponse
	url := fmt.Sprintf("%s/crates/%s/%s", c.baseURL, name, version)
	if err := c.GetJSON(ctx, url, &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if data.Version.License == "" {
		return "", false, nil
	}
	return data.Version.License, true, nil
}
