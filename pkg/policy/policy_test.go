package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/errors"
)

func TestDefaultPolicy(t *testing.T) {
	cfg := Default()
	tests := []struct {
		license string
		want    deps.Verdict
	}{
		{"MIT", deps.VerdictPass},
		{"Apache-2.0", deps.VerdictPass},
		{"BSD-3-Clause", deps.VerdictPass},
		{"ISC", deps.VerdictPass},
		{"LGPL-2.1", deps.VerdictWarn},
		{"GPL-2.0", deps.VerdictError},
		{"GPL-3.0", deps.VerdictError},
		{"AGPL-3.0", deps.VerdictError},
		{"unknown", deps.VerdictWarn},
		{"", deps.VerdictWarn},
		{"SomeRandomLicense", deps.VerdictWarn},
	}
	for _, tt := range tests {
		if got := cfg.Apply(tt.license); got != tt.want {
			t.Errorf("Apply(%q) = %v, want %v", tt.license, got, tt.want)
		}
	}
}

func TestApplyExpressions(t *testing.T) {
	cfg := Default()
	tests := []struct {
		license string
		want    deps.Verdict
	}{
		// OR picks the most permissive branch, AND the most
		// restrictive, AND binds tighter.
		{"MIT OR GPL-3.0", deps.VerdictPass},
		{"MIT AND GPL-3.0", deps.VerdictError},
		{"MIT OR GPL-3.0 AND BSD-3-Clause", deps.VerdictPass},
		{"(MIT OR GPL-3.0) AND GPL-3.0", deps.VerdictError},
		{"MIT/Apache-2.0", deps.VerdictPass},
		// Multi-word alias forms normalize before the table lookup.
		{"Apache License 2.0", deps.VerdictPass},
		{"GPLv3", deps.VerdictError},
		// WITH exceptions are a no-op on the verdict.
		{"GPL-2.0 WITH Classpath-exception-2.0", deps.VerdictError},
		{"MIT WITH Autoconf-exception-2.0", deps.VerdictPass},
		// Unknown identifiers inside expressions get the default.
		{"MIT AND Mystery-1.0", deps.VerdictWarn},
		{"GPL-3.0 OR Mystery-1.0", deps.VerdictWarn},
		// Malformed input degrades to the default, never panics.
		{"MIT OR", deps.VerdictPass},
		{"AND", deps.VerdictWarn},
		{"(((", deps.VerdictWarn},
	}
	for _, tt := range tests {
		if got := cfg.Apply(tt.license); got != tt.want {
			t.Errorf("Apply(%q) = %v, want %v", tt.license, got, tt.want)
		}
	}
}

func TestApplyCommutative(t *testing.T) {
	cfg := Default()
	pairs := [][2]string{
		{"MIT OR GPL-3.0", "GPL-3.0 OR MIT"},
		{"MIT AND GPL-3.0", "GPL-3.0 AND MIT"},
	}
	for _, pair := range pairs {
		if a, b := cfg.Apply(pair[0]), cfg.Apply(pair[1]); a != b {
			t.Errorf("Apply(%q)=%v != Apply(%q)=%v", pair[0], a, pair[1], b)
		}
	}
}

func TestApplyExactMatchWinsOverExpression(t *testing.T) {
	cfg := Config{
		Default: deps.VerdictWarn,
		Licenses: map[string]deps.Verdict{
			"MIT OR GPL-3.0": deps.VerdictError,
			"MIT":            deps.VerdictPass,
			"GPL-3.0":        deps.VerdictError,
		},
	}
	// The verbatim table entry takes precedence over evaluation.
	if got := cfg.Apply("MIT OR GPL-3.0"); got != deps.VerdictError {
		t.Errorf("Apply = %v, want error from exact match", got)
	}
}

func TestLoadProjectLocal(t *testing.T) {
	dir := t.TempDir()
	content := `
[policy]
default = "error"

[policy.licenses]
"MIT" = "pass"
"WeirdLicense-1.0" = "warn"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Default != deps.VerdictError {
		t.Errorf("Default = %v, want error", cfg.Default)
	}
	if got := cfg.Apply("MIT"); got != deps.VerdictPass {
		t.Errorf("Apply(MIT) = %v, want pass", got)
	}
	if got := cfg.Apply("WeirdLicense-1.0"); got != deps.VerdictWarn {
		t.Errorf("Apply(WeirdLicense-1.0) = %v, want warn", got)
	}
	if got := cfg.Apply("Unlisted-2.0"); got != deps.VerdictError {
		t.Errorf("Apply(Unlisted-2.0) = %v, want default error", got)
	}
}

func TestLoadOverridePath(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.toml")
	content := `
[policy.licenses]
"GPL-3.0" = "pass"
`
	if err := os.WriteFile(override, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(t.TempDir(), override)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Absent default falls back to warn.
	if cfg.Default != deps.VerdictWarn {
		t.Errorf("Default = %v, want warn", cfg.Default)
	}
	if got := cfg.Apply("GPL-3.0"); got != deps.VerdictPass {
		t.Errorf("Apply(GPL-3.0) = %v, want pass", got)
	}
}

func TestLoadMissingOverrideFails(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load should fail for a missing override path")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[policy\ndefault="), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir, "")
	if err == nil {
		t.Fatal("Load should fail for a malformed config file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestLoadBadVerdictFails(t *testing.T) {
	dir := t.TempDir()
	content := `
[policy]
default = "maybe"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, ""); err == nil {
		t.Fatal("Load should reject an unknown verdict value")
	}
}

func TestLoadNoConfigUsesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Apply("GPL-3.0"); got != deps.VerdictError {
		t.Errorf("Apply(GPL-3.0) = %v, want the built-in error verdict", got)
	}
}
