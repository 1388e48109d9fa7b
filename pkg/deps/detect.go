package deps

import (
	"os"
	"path/filepath"
	"strings"
)

// manifestMarkers maps each ecosystem to the manifest filenames whose
// presence identifies it. Detection is existence-only; file contents are
// never inspected here.
var manifestMarkers = map[Ecosystem][]string{
	EcosystemRust:   {"Cargo.toml", "Cargo.lock"},
	EcosystemPython: {"requirements.txt", "pyproject.toml", "Pipfile.lock"},
	EcosystemJava:   {"pom.xml", "build.gradle", "build.gradle.kts"},
	EcosystemNode:   {"package.json", "package-lock.json", "yarn.lock"},
	EcosystemDotNet: {"packages.config", "paket.dependencies"},
}

// DetectEcosystems returns the ecosystems whose characteristic manifest
// files exist directly in dir (no recursion). Polyglot directories can
// report multiple ecosystems; nested sub-projects are [DiscoverProjects]'s
// job, not this function's.
func DetectEcosystems(dir string) []Ecosystem {
	var found []Ecosystem
	for _, eco := range Ecosystems() {
		if ecosystemPresent(dir, eco) {
			found = append(found, eco)
		}
	}
	return found
}

func ecosystemPresent(dir string, eco Ecosystem) bool {
	for _, name := range manifestMarkers[eco] {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	if eco == EcosystemDotNet {
		return hasDotNetProjectFile(dir)
	}
	return false
}

// hasDotNetProjectFile reports whether any .csproj or .fsproj file exists
// directly under dir. SDK-style projects have no fixed manifest filename.
func hasDotNetProjectFile(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".csproj" || ext == ".fsproj" {
			return true
		}
	}
	return false
}

// IsProjectDir reports whether dir contains any known manifest file and
// therefore counts as a project root during workspace discovery.
func IsProjectDir(dir string) bool {
	return len(DetectEcosystems(dir)) > 0
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
