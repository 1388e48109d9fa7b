package python

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/licensegate/pkg/deps"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeRequirements(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "requirements.txt", `
# pinned deps
requests==2.31.0
flask == 3.0.0
django>=4.0
-r other.txt
--index-url https://example.com/simple
`)

	found, err := (&Analyzer{}).Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d deps, want 2 (only exact pins): %+v", len(found), found)
	}
	if found[0].Name != "requests" || found[0].Version != "2.31.0" {
		t.Errorf("found[0] = %+v", found[0])
	}
	if found[1].Name != "flask" || found[1].Version != "3.0.0" {
		t.Errorf("found[1] = %+v", found[1])
	}
	if found[0].Ecosystem != deps.EcosystemPython {
		t.Errorf("ecosystem = %v", found[0].Ecosystem)
	}
}

func TestAnalyzePipfileLock(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Pipfile.lock", `{
		"_meta": {"hash": {"sha256": "abc"}},
		"default": {
			"requests": {"version": "==2.31.0"},
			"urllib3": {"version": "==2.1.0"}
		},
		"develop": {
			"pytest": {"version": "==7.4.0"}
		}
	}`)

	found, err := (&Analyzer{}).Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("got %d deps, want 3: %+v", len(found), found)
	}
	byName := map[string]string{}
	for _, d := range found {
		byName[d.Name] = d.Version
	}
	if byName["requests"] != "2.31.0" {
		t.Errorf("requests version = %q", byName["requests"])
	}
	if byName["pytest"] != "7.4.0" {
		t.Errorf("pytest version = %q (develop section should be included)", byName["pytest"])
	}
}

func TestAnalyzePyproject(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "pyproject.toml", `
[project]
name = "my-app"
dependencies = [
  "fastapi==0.104.0",
  "pydantic>=2.0",
  "httpx",
]
`)

	found, err := (&Analyzer{}).Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("got %d deps, want 3: %+v", len(found), found)
	}
	byName := map[string]string{}
	for _, d := range found {
		byName[d.Name] = d.Version
	}
	if byName["fastapi"] != "0.104.0" {
		t.Errorf("fastapi version = %q", byName["fastapi"])
	}
	if byName["pydantic"] != "*" || byName["httpx"] != "*" {
		t.Errorf("unpinned versions = %q, %q, want *", byName["pydantic"], byName["httpx"])
	}
}

func TestAnalyzePriorityAndDedup(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Pipfile.lock", `{"default": {"requests": {"version": "==2.31.0"}}}`)
	write(t, dir, "requirements.txt", "Requests==2.30.0\nflask==3.0.0\n")

	found, err := (&Analyzer{}).Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	byName := map[string]string{}
	for _, d := range found {
		byName[d.Name] = d.Version
	}
	if len(found) != 2 {
		t.Fatalf("got %d deps, want 2 after case-insensitive dedup: %+v", len(found), found)
	}
	// The lockfile wins over the loose requirements pin.
	if byName["requests"] != "2.31.0" {
		t.Errorf("requests version = %q, want the Pipfile.lock pin", byName["requests"])
	}
	if byName["flask"] != "3.0.0" {
		t.Errorf("flask version = %q", byName["flask"])
	}
}

func TestAnalyzeEmptyDir(t *testing.T) {
	found, err := (&Analyzer{}).Analyze(t.TempDir())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("got %v, want none", found)
	}
}
