// Package dotnet analyzes .NET projects using NuGet or Paket.
//
// Three manifest formats are supported: SDK-style *.csproj / *.fsproj
// (PackageReference elements), legacy packages.config, and paket.lock.
// Every project file directly under the scanned directory is read.
package dotnet

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Analyzer extracts dependencies from .NET manifests.
type Analyzer struct{}

// Ecosystem returns [deps.EcosystemDotNet].
func (a *Analyzer) Ecosystem() deps.Ecosystem { return deps.EcosystemDotNet }

// Analyze parses the .NET manifests under dir, deduplicating by
// name@version. A parser failure degrades that manifest to zero results
// rather than failing the analysis.
func (a *Analyzer) Analyze(dir string) ([]deps.Dependency, error) {
	var found []deps.Dependency
	seen := make(map[string]bool)

	add := func(parsed []deps.Dependency) {
		for _, d := range parsed {
			key := d.Name + "@" + d.Version
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, d)
		}
	}

	for _, path := range projectFiles(dir) {
		if parsed, err := parseProjectFile(path); err == nil {
			add(parsed)
		}
	}
	if parsed, err := parsePackagesConfig(filepath.Join(dir, "packages.config")); err == nil {
		add(parsed)
	}
	if parsed, err := parsePaketLock(filepath.Join(dir, "paket.lock")); err == nil {
		add(parsed)
	}

	return found, nil
}

// projectFiles lists *.csproj and *.fsproj files directly under dir,
// sorted for deterministic parse order.
func projectFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".csproj" || ext == ".fsproj" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

// parseProjectFile extracts <PackageReference Include="..." Version="..."/>
// elements from an SDK-style project file.
func parseProjectFile(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj struct {
		ItemGroups []struct {
			PackageReferences []struct {
				Include string `xml:"Include,attr"`
				Version string `xml:"Version,attr"`
			} `xml:"PackageReference"`
		} `xml:"ItemGroup"`
	}
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, group := range proj.ItemGroups {
		for _, ref := range group.PackageReferences {
			if ref.Include == "" {
				continue
			}
			version := ref.Version
			if version == "" {
				version = "*"
			}
			found = append(found, deps.New(ref.Include, version, deps.EcosystemDotNet))
		}
	}
	return found, nil
}

// parsePackagesConfig extracts <package id="..." version="..."/> elements
// from a legacy NuGet packages.config.
func parsePackagesConfig(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg struct {
		Packages []struct {
			ID      string `xml:"id,attr"`
			Version string `xml:"version,attr"`
		} `xml:"package"`
	}
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, pkg := range cfg.Packages {
		if pkg.ID == "" {
			continue
		}
		found = append(found, deps.New(pkg.ID, pkg.Version, deps.EcosystemDotNet))
	}
	return found, nil
}

// paket.lock dependency line inside the NUGET section, e.g.
// "    FSharp.Core (8.0.100)". Deeper-indented lines are transitive
// constraints and are skipped.
var paketEntryRE = regexp.MustCompile(`^    ([A-Za-z0-9_.\-]+) \(([^)]+)\)`)

func parsePaketLock(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var found []deps.Dependency
	inNuget := false
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "NUGET" {
			inNuget = true
			continue
		}
		// Other top-level sections (GITHUB, HTTP, GROUP ...) end NUGET.
		if trimmed != "" && !strings.HasPrefix(line, " ") {
			inNuget = false
			continue
		}
		if !inNuget {
			continue
		}
		if m := paketEntryRE.FindStringSubmatch(line); m != nil {
			found = append(found, deps.New(m[1], m[2], deps.EcosystemDotNet))
		}
	}
	return found, nil
}
