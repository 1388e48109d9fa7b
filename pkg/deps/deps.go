package deps

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Ecosystem identifies a supported package ecosystem. The set is closed:
// detection, analysis, and registry selection all switch exhaustively on it.
type Ecosystem string

const (
	EcosystemRust   Ecosystem = "rust"
	EcosystemPython Ecosystem = "python"
	EcosystemJava   Ecosystem = "java"
	EcosystemNode   Ecosystem = "node"
	EcosystemDotNet Ecosystem = "dotnet"
)

// Ecosystems lists all supported ecosystems in detection order.
func Ecosystems() []Ecosystem {
	return []Ecosystem{
		EcosystemRust,
		EcosystemPython,
		EcosystemJava,
		EcosystemNode,
		EcosystemDotNet,
	}
}

// ParseEcosystem converts a user-supplied name (e.g. from --exclude-lang)
// into an Ecosystem. Matching is case-insensitive.
func ParseEcosystem(s string) (Ecosystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rust":
		return EcosystemRust, nil
	case "python":
		return EcosystemPython, nil
	case "java":
		return EcosystemJava, nil
	case "node", "javascript", "js":
		return EcosystemNode, nil
	case "dotnet", ".net", "csharp":
		return EcosystemDotNet, nil
	default:
		return "", fmt.Errorf("unknown ecosystem %q (available: rust, python, java, node, dotnet)", s)
	}
}

// String returns the display name (e.g. "Rust", ".NET").
func (e Ecosystem) String() string {
	switch e {
	case EcosystemRust:
		return "Rust"
	case EcosystemPython:
		return "Python"
	case EcosystemJava:
		return "Java"
	case EcosystemNode:
		return "Node"
	case EcosystemDotNet:
		return ".NET"
	default:
		return string(e)
	}
}

// Risk is a policy-independent license risk tier.
type Risk string

const (
	RiskPermissive     Risk = "permissive"
	RiskWeakCopyleft   Risk = "weak-copyleft"
	RiskStrongCopyleft Risk = "strong-copyleft"
	RiskProprietary    Risk = "proprietary"
	RiskUnknown        Risk = "unknown"
)

// String returns the display name (e.g. "Weak Copyleft").
func (r Risk) String() string {
	switch r {
	case RiskPermissive:
		return "Permissive"
	case RiskWeakCopyleft:
		return "Weak Copyleft"
	case RiskStrongCopyleft:
		return "Strong Copyleft"
	case RiskProprietary:
		return "Proprietary"
	default:
		return "Unknown"
	}
}

// Verdict is the policy-specific outcome for a license. The three values
// form a lattice ordered Pass < Warn < Error by severity.
type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictWarn
	VerdictError
)

// Or combines two verdicts with most-permissive-wins semantics,
// matching SPDX OR: the consumer may choose either license.
func (v Verdict) Or(other Verdict) Verdict {
	return min(v, other)
}

// And combines two verdicts with most-restrictive-wins semantics,
// matching SPDX AND: the consumer must satisfy both licenses.
func (v Verdict) And(other Verdict) Verdict {
	return max(v, other)
}

// String returns the lowercase name ("pass", "warn", "error").
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictError:
		return "error"
	default:
		return "warn"
	}
}

// ParseVerdict converts a config string into a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass":
		return VerdictPass, nil
	case "warn":
		return VerdictWarn, nil
	case "error":
		return VerdictError, nil
	default:
		return VerdictWarn, fmt.Errorf("invalid verdict %q (expected pass, warn, or error)", s)
	}
}

// MarshalJSON encodes the verdict as its lowercase name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a lowercase verdict name.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return v.UnmarshalText([]byte(s))
}

// UnmarshalText decodes a verdict name; used by the TOML policy config.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Source records where a dependency's license string came from.
// It is informational only and never influences the verdict.
type Source string

const (
	SourceManifest Source = "manifest"
	SourceRegistry Source = "registry"
	SourceCache    Source = "cache"
	SourceUnknown  Source = "unknown"
)

// Dependency is one third-party package discovered in a project.
//
// Name and Version are opaque identifiers scoped to the Ecosystem.
// Risk and Verdict start as placeholders (RiskUnknown, VerdictWarn) and
// are assigned exactly once by the classification stage; records are
// treated as immutable afterwards.
type Dependency struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Ecosystem   Ecosystem `json:"ecosystem"`
	LicenseRaw  string    `json:"license_raw,omitempty"`
	LicenseSPDX string    `json:"license_spdx,omitempty"`
	Risk        Risk      `json:"risk"`
	Verdict     Verdict   `json:"verdict"`
	Source      Source    `json:"source"`
}

// New creates a Dependency with placeholder risk and verdict.
func New(name, version string, eco Ecosystem) Dependency {
	return Dependency{
		Name:      name,
		Version:   version,
		Ecosystem: eco,
		Risk:      RiskUnknown,
		Verdict:   VerdictWarn,
		Source:    SourceUnknown,
	}
}

// License returns the string the classifier and policy should evaluate:
// the SPDX field if set, otherwise the raw field, otherwise "unknown".
func (d Dependency) License() string {
	if d.LicenseSPDX != "" {
		return d.LicenseSPDX
	}
	if d.LicenseRaw != "" {
		return d.LicenseRaw
	}
	return "unknown"
}

// DedupKey returns the aggregation key for collapsing exact repeats from
// overlapping manifest sources. Keys are scoped to the ecosystem. Python
// dedupes case-insensitively by name only (PyPI names are case-insensitive
// and one installed version wins); every other ecosystem keys on the exact
// (name, version) pair.
func (d Dependency) DedupKey() string {
	if d.Ecosystem == EcosystemPython {
		return string(d.Ecosystem) + ":" + strings.ToLower(d.Name)
	}
	return string(d.Ecosystem) + ":" + d.Name + "@" + d.Version
}

// ProjectScan is the result of scanning one sub-project in workspace mode.
// Err records a scan-level failure for this project; sibling projects are
// unaffected.
type ProjectScan struct {
	Name         string       `json:"name"`
	Path         string       `json:"path"`
	Dependencies []Dependency `json:"dependencies"`
	Err          error        `json:"-"`
}
