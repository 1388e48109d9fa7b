// Package report renders scan results for people and machines.
//
// The terminal renderer groups dependencies by verdict with the worst
// offenders first; the JSON renderer emits a stable document for CI
// tooling. Both consume the same [Summary] so the numbers always agree.
package report

import (
	"sort"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Summary aggregates verdict and risk counts over one dependency list.
type Summary struct {
	Total    int            `json:"total"`
	Verdicts map[string]int `json:"verdicts"`
	Risks    map[string]int `json:"risks"`
	Licenses []LicenseCount `json:"licenses"`
}

// LicenseCount is one row of the license frequency breakdown.
type LicenseCount struct {
	License string       `json:"license"`
	Verdict deps.Verdict `json:"verdict"`
	Count   int          `json:"count"`
}

// Summarize tallies dependencies by verdict, risk, and license.
// License rows sort by descending count, ties by name.
func Summarize(items []deps.Dependency) Summary {
	summary := Summary{
		Total:    len(items),
		Verdicts: make(map[string]int),
		Risks:    make(map[string]int),
	}

	type key struct {
		license string
		verdict deps.Verdict
	}
	counts := make(map[key]int)
	for _, d := range items {
		summary.Verdicts[d.Verdict.String()]++
		summary.Risks[string(d.Risk)]++
		counts[key{d.License(), d.Verdict}]++
	}

	for k, n := range counts {
		summary.Licenses = append(summary.Licenses, LicenseCount{
			License: k.license,
			Verdict: k.verdict,
			Count:   n,
		})
	}
	sort.Slice(summary.Licenses, func(i, j int) bool {
		if summary.Licenses[i].Count != summary.Licenses[j].Count {
			return summary.Licenses[i].Count > summary.Licenses[j].Count
		}
		return summary.Licenses[i].License < summary.Licenses[j].License
	})
	return summary
}

// Errors returns the number of error verdicts in the summary.
func (s Summary) Errors() int {
	return s.Verdicts[deps.VerdictError.String()]
}

// Warnings returns the number of warn verdicts in the summary.
func (s Summary) Warnings() int {
	return s.Verdicts[deps.VerdictWarn.String()]
}

// Passes returns the number of pass verdicts in the summary.
func (s Summary) Passes() int {
	return s.Verdicts[deps.VerdictPass.String()]
}

// byVerdict partitions dependencies by verdict, each group sorted by
// ecosystem then name for stable output.
func byVerdict(items []deps.Dependency) map[deps.Verdict][]deps.Dependency {
	groups := make(map[deps.Verdict][]deps.Dependency)
	for _, d := range items {
		groups[d.Verdict] = append(groups[d.Verdict], d)
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Ecosystem != group[j].Ecosystem {
				return group[i].Ecosystem < group[j].Ecosystem
			}
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].Version < group[j].Version
		})
	}
	return groups
}
