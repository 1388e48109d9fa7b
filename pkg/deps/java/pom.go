package java

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

type pomProject struct {
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// parsePOM extracts declared dependencies from a Maven pom.xml.
// Test- and provided-scope dependencies, optional dependencies, and
// coordinates with unresolved ${property} placeholders are skipped.
func parsePOM(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, dep := range pom.Dependencies {
		if dep.Scope == "test" || dep.Scope == "provided" || dep.Optional == "true" {
			continue
		}
		if strings.HasPrefix(dep.GroupID, "${") || strings.HasPrefix(dep.ArtifactID, "${") {
			continue
		}
		if dep.ArtifactID == "" {
			continue
		}
		found = append(found, makeDep(dep.GroupID, dep.ArtifactID, dep.Version))
	}
	return found, nil
}
