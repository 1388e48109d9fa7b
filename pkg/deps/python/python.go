// Package python analyzes Python projects.
//
// Manifests are parsed in priority order: Pipfile.lock (pinned) →
// requirements.txt → pyproject.toml. Results are deduplicated by package
// name, case-insensitively, matching PyPI's name semantics.
package python

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensegate/pkg/deps"
)

var (
	pinRE  = regexp.MustCompile(`^([A-Za-z0-9_\-.]+)\s*==\s*([^\s;]+)`)
	specRE = regexp.MustCompile(`^([A-Za-z0-9_\-.]+)\s*(?:==\s*([^\s;,\[]+))?`)
)

// Analyzer extracts dependencies from Python manifests.
type Analyzer struct{}

// Ecosystem returns [deps.EcosystemPython].
func (a *Analyzer) Ecosystem() deps.Ecosystem { return deps.EcosystemPython }

// Analyze parses the Python manifests under dir in priority order,
// deduplicating by lowercased package name. A parser failure degrades
// that manifest to zero results rather than failing the analysis.
func (a *Analyzer) Analyze(dir string) ([]deps.Dependency, error) {
	var found []deps.Dependency
	seen := make(map[string]bool)

	add := func(parsed []deps.Dependency) {
		for _, d := range parsed {
			key := strings.ToLower(d.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, d)
		}
	}

	if parsed, err := parsePipfileLock(filepath.Join(dir, "Pipfile.lock")); err == nil {
		add(parsed)
	}
	if parsed, err := parseRequirements(filepath.Join(dir, "requirements.txt")); err == nil {
		add(parsed)
	}
	if parsed, err := parsePyproject(filepath.Join(dir, "pyproject.toml")); err == nil {
		add(parsed)
	}

	return found, nil
}

// parsePipfileLock reads the default and develop sections of Pipfile.lock.
func parsePipfileLock(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lock map[string]json.RawMessage
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, section := range []string{"default", "develop"} {
		raw, ok := lock[section]
		if !ok {
			continue
		}
		var pkgs map[string]struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(raw, &pkgs); err != nil {
			continue
		}
		for name, info := range pkgs {
			version := strings.TrimPrefix(info.Version, "==")
			if version == "" {
				version = "*"
			}
			found = append(found, deps.New(name, version, deps.EcosystemPython))
		}
	}
	// Map iteration order is random; sort for deterministic output.
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// parseRequirements reads requirements.txt, keeping only exact pins
// (name==version). Ranges, includes, and flags are skipped.
func parseRequirements(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if m := pinRE.FindStringSubmatch(line); m != nil {
			found = append(found, deps.New(m[1], m[2], deps.EcosystemPython))
		}
	}
	return found, nil
}

// parsePyproject reads [project].dependencies from pyproject.toml.
// Specifiers without an exact pin record version "*".
func parsePyproject(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pyproject struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, spec := range pyproject.Project.Dependencies {
		m := specRE.FindStringSubmatch(strings.TrimSpace(spec))
		if m == nil || m[1] == "" {
			continue
		}
		version := m[2]
		if version == "" {
			version = "*"
		}
		found = append(found, deps.New(m[1], version, deps.EcosystemPython))
	}
	return found, nil
}
