// Package spdx handles SPDX license identifiers and expressions.
//
// # Overview
//
// License fields in the wild range from clean SPDX identifiers ("MIT")
// through compound expressions ("(MIT OR Apache-2.0) AND Unicode-DFS-2016")
// to free-form prose ("The MIT License"). This package provides:
//
//   - [Normalize]: maps common human-readable names to SPDX identifiers
//   - [Classify]: maps a license string to a [deps.Risk] tier
//   - [Evaluate]: evaluates a compound expression to a [deps.Verdict]
//     against a per-identifier lookup
//
// # Expression Grammar
//
// Evaluate implements a small recursive-descent interpreter:
//
//	expr     := or_expr
//	or_expr  := and_expr ( "OR" and_expr )*
//	and_expr := atom ( "AND" atom )*
//	atom     := "(" expr ")" | identifier ( "WITH" identifier )?
//
// AND binds tighter than OR. OR combines verdicts most-permissive-wins,
// AND most-restrictive-wins. A WITH exception clause is recognized and
// discarded; only the base identifier is looked up. Legacy "/"-separated
// lists are treated as OR.
//
// Malformed expressions never panic: a missing operand evaluates to the
// caller's fallback verdict and an unmatched ")" ends the expression.
package spdx

import (
	"strings"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// riskTable maps canonical SPDX identifiers to risk tiers. Identifiers
// not listed classify as Unknown.
var riskTable = map[string]deps.Risk{
	// Permissive
	"MIT":            deps.RiskPermissive,
	"MIT-0":          deps.RiskPermissive,
	"Apache-2.0":     deps.RiskPermissive,
	"BSD-2-Clause":   deps.RiskPermissive,
	"BSD-3-Clause":   deps.RiskPermissive,
	"BSD-4-Clause":   deps.RiskPermissive,
	"0BSD":           deps.RiskPermissive,
	"ISC":            deps.RiskPermissive,
	"Unlicense":      deps.RiskPermissive,
	"Zlib":           deps.RiskPermissive,
	"CC0-1.0":        deps.RiskPermissive,
	"CC-BY-3.0":      deps.RiskPermissive,
	"CC-BY-4.0":      deps.RiskPermissive,
	"WTFPL":          deps.RiskPermissive,
	"PSF-2.0":        deps.RiskPermissive,
	"Python-2.0":     deps.RiskPermissive,
	"BlueOak-1.0.0":  deps.RiskPermissive,
	"Artistic-2.0":   deps.RiskPermissive,

	// Weak copyleft
	"LGPL-2.0":          deps.RiskWeakCopyleft,
	"LGPL-2.0-only":     deps.RiskWeakCopyleft,
	"LGPL-2.0-or-later": deps.RiskWeakCopyleft,
	"LGPL-2.1":          deps.RiskWeakCopyleft,
	"LGPL-2.1-only":     deps.RiskWeakCopyleft,
	"LGPL-2.1-or-later": deps.RiskWeakCopyleft,
	"LGPL-3.0":          deps.RiskWeakCopyleft,
	"LGPL-3.0-only":     deps.RiskWeakCopyleft,
	"LGPL-3.0-or-later": deps.RiskWeakCopyleft,
	"MPL-2.0":           deps.RiskWeakCopyleft,
	"EPL-1.0":           deps.RiskWeakCopyleft,
	"EPL-2.0":           deps.RiskWeakCopyleft,
	"EUPL-1.2":          deps.RiskWeakCopyleft,
	"CDDL-1.0":          deps.RiskWeakCopyleft,
	"APSL-2.0":          deps.RiskWeakCopyleft,
	"OSL-3.0":           deps.RiskWeakCopyleft,

	// Strong copyleft
	"GPL-2.0":           deps.RiskStrongCopyleft,
	"GPL-2.0-only":      deps.RiskStrongCopyleft,
	"GPL-2.0-or-later":  deps.RiskStrongCopyleft,
	"GPL-3.0":           deps.RiskStrongCopyleft,
	"GPL-3.0-only":      deps.RiskStrongCopyleft,
	"GPL-3.0-or-later":  deps.RiskStrongCopyleft,
	"AGPL-3.0":          deps.RiskStrongCopyleft,
	"AGPL-3.0-only":     deps.RiskStrongCopyleft,
	"AGPL-3.0-or-later": deps.RiskStrongCopyleft,
	"EUPL-1.1":          deps.RiskStrongCopyleft,
}

// aliases maps common human-readable license names to SPDX identifiers.
var aliases = map[string]string{
	"Apache 2.0":                  "Apache-2.0",
	"Apache License 2.0":          "Apache-2.0",
	"Apache License, Version 2.0": "Apache-2.0",
	"MIT License":                 "MIT",
	"The MIT License":             "MIT",
	"BSD":                         "BSD-3-Clause",
	"BSD License":                 "BSD-3-Clause",
	"BSD 2-Clause":                "BSD-2-Clause",
	"Simplified BSD":              "BSD-2-Clause",
	"BSD 3-Clause":                "BSD-3-Clause",
	"New BSD":                     "BSD-3-Clause",
	"Modified BSD":                "BSD-3-Clause",
	"GNU GPL v2":                  "GPL-2.0",
	"GNU General Public License v2": "GPL-2.0",
	"GPL v2":                      "GPL-2.0",
	"GPLv2":                       "GPL-2.0",
	"GNU GPL v3":                  "GPL-3.0",
	"GNU General Public License v3": "GPL-3.0",
	"GPL v3":                      "GPL-3.0",
	"GPLv3":                       "GPL-3.0",
	"GNU LGPL v2.1":               "LGPL-2.1",
	"LGPL v2.1":                   "LGPL-2.1",
	"LGPLv2.1":                    "LGPL-2.1",
	"GNU LGPL v3":                 "LGPL-3.0",
	"LGPL v3":                     "LGPL-3.0",
	"LGPLv3":                      "LGPL-3.0",
	"Mozilla Public License 2.0":  "MPL-2.0",
	"MPL 2.0":                     "MPL-2.0",
	"MPLv2":                       "MPL-2.0",
	"ISC License":                 "ISC",
	"CC0":                         "CC0-1.0",
	"Public Domain":               "CC0-1.0",
	"AGPL v3":                     "AGPL-3.0",
	"AGPLv3":                      "AGPL-3.0",
	"GNU AGPL v3":                 "AGPL-3.0",
}

// Normalize maps common human-readable license names to their SPDX
// identifier. Unrecognized strings are returned trimmed but otherwise
// unchanged.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := aliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// RiskOf classifies a single canonical SPDX identifier. Compound
// expressions belong in [Classify].
func RiskOf(id string) deps.Risk {
	if risk, ok := riskTable[strings.TrimSpace(id)]; ok {
		return risk
	}
	return deps.RiskUnknown
}
