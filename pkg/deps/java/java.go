// Package java analyzes Java and Kotlin projects managed by Maven or
// Gradle. Dependencies are named by their groupId:artifactId coordinate.
package java

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Analyzer extracts dependencies from pom.xml, build.gradle,
// build.gradle.kts, and gradle.lockfile.
type Analyzer struct{}

// Ecosystem returns [deps.EcosystemJava].
func (a *Analyzer) Ecosystem() deps.Ecosystem { return deps.EcosystemJava }

// Analyze parses the Java manifests under dir, deduplicating by
// group:artifact@version. A parser failure degrades that manifest to zero
// results rather than failing the analysis.
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

	if parsed, err := parsePOM(filepath.Join(dir, "pom.xml")); err == nil {
		add(parsed)
	}
	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		if parsed, err := parseGradle(filepath.Join(dir, name)); err == nil {
			add(parsed)
		}
	}
	if parsed, err := parseGradleLockfile(filepath.Join(dir, "gradle.lockfile")); err == nil {
		add(parsed)
	}

	return found, nil
}

func makeDep(groupID, artifactID, version string) deps.Dependency {
	name := artifactID
	if groupID != "" {
		name = groupID + ":" + artifactID
	}
	return deps.New(name, version, deps.EcosystemJava)
}

var (
	// implementation 'group:artifact:version' (single or double quotes,
	// with or without parentheses)
	gradleShortRE = regexp.MustCompile(
		`(?:implementation|api|compileOnly|runtimeOnly|testImplementation)\s*\(?\s*['"]([^:'"]+):([^:'"]+):([^'"]+)['"]`)
	// group: 'g', name: 'n', version: 'v'
	gradleMapRE = regexp.MustCompile(
		`(?:implementation|api|compileOnly|runtimeOnly|testImplementation)\s+group:\s*['"]([^'"]+)['"]\s*,\s*name:\s*['"]([^'"]+)['"]\s*,\s*version:\s*['"]([^'"]+)['"]`)
	// gradle.lockfile line: group:artifact:version=configuration,...
	gradleLockRE = regexp.MustCompile(`^([^:=\s]+):([^:=\s]+):([^=\s]+)`)
)

// parseGradle extracts coordinates from a Gradle build script with
// regular expressions. Gradle files are programs, so only the two common
// literal declaration styles are recognized.
func parseGradle(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	var found []deps.Dependency
	for _, m := range gradleShortRE.FindAllStringSubmatch(content, -1) {
		found = append(found, makeDep(m[1], m[2], m[3]))
	}
	for _, m := range gradleMapRE.FindAllStringSubmatch(content, -1) {
		found = append(found, makeDep(m[1], m[2], m[3]))
	}
	return found, nil
}

func parseGradleLockfile(path string) ([]deps.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "empty=") {
			continue
		}
		if m := gradleLockRE.FindStringSubmatch(line); m != nil {
			found = append(found, makeDep(m[1], m[2], m[3]))
		}
	}
	return found, nil
}
