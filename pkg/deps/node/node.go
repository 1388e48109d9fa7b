// Package node analyzes Node.js projects.
//
// Manifests are parsed in priority order: package-lock.json (pinned,
// often with license fields) → yarn.lock → package.json. The loose
// package.json is consulted only when no lockfile yielded anything,
// since it declares version ranges rather than resolved versions.
package node

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Analyzer extracts dependencies from Node manifests.
type Analyzer struct{}

// Ecosystem returns [deps.EcosystemNode].
func (a *Analyzer) Ecosystem() deps.Ecosystem { return deps.EcosystemNode }

// Analyze parses the Node manifests under dir, deduplicating by
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

	if parsed, err := parsePackageLock(filepath.Join(dir, "package-lock.json"), dir); err == nil {
		add(parsed)
	}
	if parsed, err := parseYarnLock(filepath.Join(dir, "yarn.lock")); err == nil {
		add(parsed)
	}
	if len(found) == 0 {
		if parsed, err := parsePackageJSON(filepath.Join(dir, "package.json")); err == nil {
			add(parsed)
		}
	}

	return found, nil
}

func makeDep(name, version, license string) deps.Dependency {
	d := deps.New(name, version, deps.EcosystemNode)
	if license != "" {
		d.LicenseRaw = license
		d.LicenseSPDX = license
		d.Source = deps.SourceManifest
	}
	return d
}

// parsePackageLock reads the packages map of a v2/v3 package-lock.json.
// When a lock entry has no license field, the installed package's own
// package.json under node_modules is consulted for offline license data.
func parsePackageLock(lockPath, projectRoot string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, err
	}

	var lock struct {
		Packages map[string]struct {
			Version string `json:"version"`
			License string `json:"license"`
		} `json:"packages"`
	}
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for pkgPath, info := range lock.Packages {
		// The root project is keyed by the empty string.
		if pkgPath == "" {
			continue
		}

		// "node_modules/foo" → "foo"; nested installs keep the last
		// path segment after the final node_modules component, so
		// "node_modules/a/node_modules/@scope/b" → "@scope/b".
		name := pkgPath
		if i := strings.LastIndex(pkgPath, "node_modules/"); i >= 0 {
			name = pkgPath[i+len("node_modules/"):]
		}

		version := info.Version
		if version == "" {
			version = "*"
		}

		license := info.License
		if license == "" {
			license = licenseFromPackageJSON(filepath.Join(projectRoot, filepath.FromSlash(pkgPath), "package.json"))
		}

		found = append(found, makeDep(name, version, license))
	}
	sortDeps(found)
	return found, nil
}

var (
	// yarn.lock block header: foo@^1.0.0: or "@scope/foo@^1.0.0":
	yarnHeaderRE  = regexp.MustCompile(`^"?(@?[^@"]+)@[^:"]*"?,?.*:$`)
	yarnVersionRE = regexp.MustCompile(`^\s+version\s+"([^"]+)"`)
)

// parseYarnLock extracts name/version pairs from yarn.lock v1 blocks.
func parseYarnLock(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var found []deps.Dependency
	var current string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			current = ""
			if m := yarnHeaderRE.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				current = m[1]
			}
			continue
		}
		if current == "" {
			continue
		}
		if m := yarnVersionRE.FindStringSubmatch(line); m != nil {
			found = append(found, makeDep(current, m[1], ""))
			current = ""
		}
	}
	return found, nil
}

// parsePackageJSON reads declared dependencies and devDependencies.
// Versions are the declared ranges, not resolved pins.
func parsePackageJSON(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for name, version := range pkg.Dependencies {
		found = append(found, makeDep(name, version, ""))
	}
	for name, version := range pkg.DevDependencies {
		found = append(found, makeDep(name, version, ""))
	}
	sortDeps(found)
	return found, nil
}

// sortDeps orders records by name then version so map-backed parsers
// produce deterministic output.
func sortDeps(ds []deps.Dependency) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Name != ds[j].Name {
			return ds[i].Name < ds[j].Name
		}
		return ds[i].Version < ds[j].Version
	})
}

func licenseFromPackageJSON(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		License json.RawMessage `json:"license"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}

	// Usually a plain string; very old packages used {"type": "..."}.
	var s string
	if err := json.Unmarshal(pkg.License, &s); err == nil {
		return s
	}
	var obj struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(pkg.License, &obj); err == nil {
		return obj.Type
	}
	return ""
}
