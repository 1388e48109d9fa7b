// Package ecosystems wires each supported ecosystem to its analyzer.
// The mapping is closed: every [deps.Ecosystem] value has exactly one
// analyzer, and the dispatch here is the single place that knows about
// all ecosystem subpackages.
package ecosystems

import (
	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/deps/dotnet"
	"github.com/matzehuels/licensegate/pkg/deps/java"
	"github.com/matzehuels/licensegate/pkg/deps/node"
	"github.com/matzehuels/licensegate/pkg/deps/python"
	"github.com/matzehuels/licensegate/pkg/deps/rust"
)

// For returns the analyzer for eco, or nil for an unknown value.
func For(eco deps.Ecosystem) deps.Analyzer {
	switch eco {
	case deps.EcosystemRust:
		return &rust.Analyzer{}
	case deps.EcosystemPython:
		return &python.Analyzer{}
	case deps.EcosystemJava:
		return &java.Analyzer{}
	case deps.EcosystemNode:
		return &node.Analyzer{}
	case deps.EcosystemDotNet:
		return &dotnet.Analyzer{}
	default:
		return nil
	}
}

// Analyzers returns the analyzers for the given ecosystems, preserving
// order and skipping unknown values.
func Analyzers(ecos []deps.Ecosystem) []deps.Analyzer {
	var out []deps.Analyzer
	for _, eco := range ecos {
		if a := For(eco); a != nil {
			out = append(out, a)
		}
	}
	return out
}
