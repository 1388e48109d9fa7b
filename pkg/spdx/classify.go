package spdx

import (
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// permissiveness orders risk tiers from most to least permissive, used
// to pick the best alternative of an OR.
var permissiveness = map[deps.Risk]int{
	deps.RiskPermissive:     0,
	deps.RiskWeakCopyleft:   1,
	deps.RiskStrongCopyleft: 2,
	deps.RiskUnknown:        3,
	deps.RiskProprietary:    4,
}

// restrictiveness orders risk tiers for the worst member of an AND.
// Unknown ranks least restrictive here: an unrecognized member never
// outweighs a known copyleft one.
var restrictiveness = map[deps.Risk]int{
	deps.RiskUnknown:        0,
	deps.RiskPermissive:     1,
	deps.RiskWeakCopyleft:   2,
	deps.RiskStrongCopyleft: 3,
	deps.RiskProprietary:    4,
}

// Classify maps a raw license string to a risk tier.
//
// Empty strings and the literal "unknown" classify as Unknown. Strings
// containing "proprietary" or "commercial" classify as Proprietary
// before any SPDX interpretation. Compound expressions are handled with
// a flat split: OR alternatives resolve to the most permissive member,
// AND members to the most restrictive. Parentheses are ignored at this
// level; exact grouping only matters for policy verdicts, which
// [Evaluate] handles.
func Classify(raw string) deps.Risk {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "unknown") {
		return deps.RiskUnknown
	}

	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "proprietary") || strings.Contains(lower, "commercial") {
		return deps.RiskProprietary
	}

	expr := strings.ReplaceAll(trimmed, "/", " OR ")
	expr = strings.ReplaceAll(expr, "(", " ")
	expr = strings.ReplaceAll(expr, ")", " ")

	best := deps.RiskUnknown
	first := true
	for _, alternative := range splitOperator(expr, "OR") {
		risk := classifyConjunction(alternative)
		if first || permissiveness[risk] < permissiveness[best] {
			best = risk
			first = false
		}
	}
	return best
}

// classifyConjunction resolves an AND group to its most restrictive
// member.
func classifyConjunction(expr string) deps.Risk {
	worst := deps.RiskUnknown
	first := true
	for _, member := range splitOperator(expr, "AND") {
		id := member
		if idx := indexOperator(id, "WITH"); idx >= 0 {
			id = id[:idx]
		}
		risk := RiskOf(Normalize(id))
		if first || restrictiveness[risk] > restrictiveness[worst] {
			worst = risk
			first = false
		}
	}
	return worst
}

// splitOperator splits expr on a whole-word operator, case-insensitive.
// Returns the trimmed non-empty parts; at minimum the trimmed input.
func splitOperator(expr, op string) []string {
	var parts []string
	rest := expr
	for {
		idx := indexOperator(rest, op)
		if idx < 0 {
			break
		}
		if part := strings.TrimSpace(rest[:idx]); part != "" {
			parts = append(parts, part)
		}
		rest = rest[idx+len(op):]
	}
	if part := strings.TrimSpace(rest); part != "" {
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		parts = append(parts, strings.TrimSpace(expr))
	}
	return parts
}

// indexOperator finds a whole-word, case-insensitive occurrence of op
// in expr, or -1. Word boundaries are whitespace so identifiers like
// "ORACLE-1.0" are not split.
func indexOperator(expr, op string) int {
	lower := strings.ToLower(expr)
	lowerOp := strings.ToLower(op)
	start := 0
	for {
		idx := strings.Index(lower[start:], lowerOp)
		if idx < 0 {
			return -1
		}
		idx += start
		before := idx == 0 || isSpace(expr[idx-1])
		end := idx + len(op)
		after := end == len(expr) || isSpace(expr[end])
		if before && after {
			return idx
		}
		start = idx + 1
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
