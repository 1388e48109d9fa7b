package deps

// Analyzer extracts dependency records from the manifest files of one
// ecosystem. Implementations parse manifests in priority order (most
// precisely pinned source first) and dedupe their own output; license
// classification happens later in the pipeline, never inside an analyzer.
type Analyzer interface {
	// Ecosystem returns the ecosystem this analyzer handles.
	Ecosystem() Ecosystem
	// Analyze parses manifests directly under dir and returns the
	// discovered dependencies. A missing manifest is not an error;
	// it simply yields no results.
	Analyze(dir string) ([]Dependency, error)
}

// Collect runs every analyzer whose ecosystem was detected in dir and
// merges the results into one ordered, deduplicated list.
//
// An analyzer failure is isolated: that ecosystem contributes zero
// dependencies and the failure is reported through logf. Duplicate
// records (same [Dependency.DedupKey]) from overlapping manifest sources
// are collapsed, keeping the first occurrence — analyzers list their most
// precisely pinned source first, so a pinned entry wins over a range.
func Collect(dir string, analyzers []Analyzer, logf func(string, ...any)) []Dependency {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var all []Dependency
	seen := make(map[string]bool)

	for _, a := range analyzers {
		found, err := a.Analyze(dir)
		if err != nil {
			logf("%s analyzer failed: %v", a.Ecosystem(), err)
			continue
		}
		for _, d := range found {
			key := d.DedupKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, d)
		}
	}
	return all
}
