package deps

import (
	"os"
	"path/filepath"
	"sort"
)

// noiseDirs are directory names skipped during workspace discovery:
// VCS metadata, build output, and dependency download trees. Manifests
// below these belong to tooling, not to a sub-project.
var noiseDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	".idea":            true,
	".vscode":          true,
	".cache":           true,
	".tox":             true,
	".venv":            true,
	"venv":             true,
	"__pycache__":      true,
	"node_modules":     true,
	"bower_components": true,
	"target":           true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"bin":              true,
	"obj":              true,
}

// DiscoverProjects walks the tree under root and returns the sub-project
// directories, sorted by path for deterministic output.
//
// The walk is depth-first. A directory that satisfies [IsProjectDir] is
// recorded and not descended into: manifests nested under a recognized
// project root (vendored sources, fixtures) belong to that project.
// Canonicalized paths are tracked in a visited set so symlink cycles
// terminate. Unreadable directories contribute no results.
func DiscoverProjects(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	visited := make(map[string]bool)
	var projects []string
	walkProjects(root, visited, &projects)
	sort.Strings(projects)
	return projects, nil
}

func walkProjects(dir string, visited map[string]bool, projects *[]string) {
	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		canonical = dir
	}
	if visited[canonical] {
		return
	}
	visited[canonical] = true

	if IsProjectDir(dir) {
		*projects = append(*projects, dir)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var subdirs []string
	for _, e := range entries {
		if !e.IsDir() && e.Type()&os.ModeSymlink == 0 {
			continue
		}
		if noiseDirs[e.Name()] {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if info, err := os.Stat(sub); err != nil || !info.IsDir() {
			continue
		}
		subdirs = append(subdirs, sub)
	}
	sort.Strings(subdirs)

	for _, sub := range subdirs {
		walkProjects(sub, visited, projects)
	}
}
