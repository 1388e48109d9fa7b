package report

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// jsonReport is the machine-readable document for a single project.
type jsonReport struct {
	Path         string            `json:"path"`
	Summary      Summary           `json:"summary"`
	Dependencies []deps.Dependency `json:"dependencies"`
}

// jsonProject is one entry of a workspace document.
type jsonProject struct {
	Name         string            `json:"name"`
	Path         string            `json:"path"`
	Error        string            `json:"error,omitempty"`
	Summary      *Summary          `json:"summary,omitempty"`
	Dependencies []deps.Dependency `json:"dependencies,omitempty"`
}

// JSON writes a machine-readable report for one project.
func JSON(w io.Writer, path string, items []deps.Dependency) error {
	doc := jsonReport{
		Path:         path,
		Summary:      Summarize(items),
		Dependencies: items,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// JSONWorkspace writes a machine-readable report for a whole
// workspace. Failed projects carry their error string instead of
// dependency data.
func JSONWorkspace(w io.Writer, scans []deps.ProjectScan) error {
	projects := make([]jsonProject, 0, len(scans))
	for _, scan := range scans {
		entry := jsonProject{Name: scan.Name, Path: scan.Path}
		if scan.Err != nil {
			entry.Error = scan.Err.Error()
		} else {
			summary := Summarize(scan.Dependencies)
			entry.Summary = &summary
			entry.Dependencies = scan.Dependencies
		}
		projects = append(projects, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Projects []jsonProject `json:"projects"`
	}{projects})
}
