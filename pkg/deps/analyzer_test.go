package deps

import (
	"errors"
	"fmt"
	"testing"
)

// stubAnalyzer returns canned results without touching the filesystem.
type stubAnalyzer struct {
	eco  Ecosystem
	deps []Dependency
	err  error
}

func (s *stubAnalyzer) Ecosystem() Ecosystem { return s.eco }

func (s *stubAnalyzer) Analyze(dir string) ([]Dependency, error) {
	return s.deps, s.err
}

func TestCollectMergesAnalyzers(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{eco: EcosystemRust, deps: []Dependency{
			New("serde", "1.0.0", EcosystemRust),
		}},
		&stubAnalyzer{eco: EcosystemNode, deps: []Dependency{
			New("express", "4.18.2", EcosystemNode),
		}},
	}
	got := Collect(t.TempDir(), analyzers, nil)
	if len(got) != 2 {
		t.Fatalf("got %d dependencies, want 2", len(got))
	}
	if got[0].Name != "serde" || got[1].Name != "express" {
		t.Errorf("order = %q, %q; analyzer order should be preserved", got[0].Name, got[1].Name)
	}
}

func TestCollectDedupFirstWins(t *testing.T) {
	pinned := New("requests", "2.31.0", EcosystemPython)
	pinned.LicenseRaw = "Apache-2.0"
	ranged := New("Requests", "*", EcosystemPython)

	analyzers := []Analyzer{
		&stubAnalyzer{eco: EcosystemPython, deps: []Dependency{pinned, ranged}},
	}
	got := Collect(t.TempDir(), analyzers, nil)
	if len(got) != 1 {
		t.Fatalf("got %d dependencies, want 1 after dedup", len(got))
	}
	if got[0].Version != "2.31.0" || got[0].LicenseRaw != "Apache-2.0" {
		t.Errorf("dedup kept %+v, want the pinned record", got[0])
	}
}

func TestCollectIsolatesAnalyzerFailure(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{eco: EcosystemJava, err: errors.New("bad pom")},
		&stubAnalyzer{eco: EcosystemRust, deps: []Dependency{
			New("serde", "1.0.0", EcosystemRust),
		}},
	}

	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}
	got := Collect(t.TempDir(), analyzers, logf)
	if len(got) != 1 || got[0].Name != "serde" {
		t.Fatalf("got %v, want just serde", got)
	}
	if len(logged) != 1 {
		t.Fatalf("logged %d messages, want 1", len(logged))
	}
}

func TestCollectNilLogf(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{eco: EcosystemJava, err: errors.New("boom")},
	}
	// Must not panic without a log sink.
	if got := Collect(t.TempDir(), analyzers, nil); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}
