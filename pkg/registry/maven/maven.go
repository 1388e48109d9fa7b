// Package maven provides a client for Maven Central POM metadata.
//
// # Overview
//
// Maven Central has no JSON metadata API; license information lives in
// the artifact's POM file:
//
//	GET https://repo1.maven.org/maven2/{group path}/{artifact}/{version}/{artifact}-{version}.pom
//
// Dots in the group ID become path segments ("org.slf4j" is
// "org/slf4j"). The first <license> entry under <licenses> wins; POMs
// that inherit their license from a parent report no license here.
package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/licensegate/pkg/registry"
)

// Client fetches POM files from Maven Central.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Maven Central client. Pass nil to use a default
// HTTP client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		Client:  registry.NewClient(httpClient, nil),
		baseURL: "https://repo1.maven.org/maven2",
	}
}

type pomLicenses struct {
	Licenses []struct {
		Name string `xml:"name"`
	} `xml:"licenses>license"`
}

// FetchLicense retrieves the license declared in an artifact's POM.
// The name must be in "groupId:artifactId" form. An unknown artifact,
// an unparseable POM, or a POM without a licenses section reports
// found=false.
func (c *Client) FetchLicense(ctx context.Context, name, version string) (string, bool, error) {
	groupID, artifactID, ok := strings.Cut(name, ":")
	if !ok || groupID == "" || artifactID == "" || version == "" {
		return "", false, nil
	}

	groupPath := strings.ReplaceAll(groupID, ".", "/")
	url := fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom", c.baseURL, groupPath, artifactID, version, artifactID, version)

	body, err := c.GetText(ctx, url)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	var pom pomLicenses
	if err := xml.Unmarshal([]byte(body), &pom); err != nil {
		// A malformed POM is a data problem, not a scan failure.
		return "", false, nil
	}
	for _, license := range pom.Licenses {
		if trimmed := strings.TrimSpace(license.Name); trimmed != "" {
			return trimmed, true, nil
		}
	}
	return "", false, nil
}
