package deps

import (
	"encoding/json"
	"testing"
)

func TestVerdictLattice(t *testing.T) {
	tests := []struct {
		a, b    Verdict
		wantOr  Verdict
		wantAnd Verdict
	}{
		{VerdictPass, VerdictPass, VerdictPass, VerdictPass},
		{VerdictPass, VerdictWarn, VerdictPass, VerdictWarn},
		{VerdictPass, VerdictError, VerdictPass, VerdictError},
		{VerdictWarn, VerdictError, VerdictWarn, VerdictError},
		{VerdictError, VerdictError, VerdictError, VerdictError},
	}
	for _, tt := range tests {
		if got := tt.a.Or(tt.b); got != tt.wantOr {
			t.Errorf("%v Or %v = %v, want %v", tt.a, tt.b, got, tt.wantOr)
		}
		if got := tt.b.Or(tt.a); got != tt.wantOr {
			t.Errorf("Or is not commutative for %v, %v", tt.a, tt.b)
		}
		if got := tt.a.And(tt.b); got != tt.wantAnd {
			t.Errorf("%v And %v = %v, want %v", tt.a, tt.b, got, tt.wantAnd)
		}
		if got := tt.b.And(tt.a); got != tt.wantAnd {
			t.Errorf("And is not commutative for %v, %v", tt.a, tt.b)
		}
	}
}

func TestParseVerdict(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Verdict
	}{
		{"pass", VerdictPass},
		{"WARN", VerdictWarn},
		{" Error ", VerdictError},
	} {
		got, err := ParseVerdict(tt.in)
		if err != nil {
			t.Errorf("ParseVerdict(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseVerdict(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseVerdict("maybe"); err == nil {
		t.Error("ParseVerdict should reject unknown names")
	}
}

func TestVerdictJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(VerdictError)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"error"` {
		t.Errorf("Marshal = %s", data)
	}
	var v Verdict
	if err := json.Unmarshal([]byte(`"pass"`), &v); err != nil {
		t.Fatal(err)
	}
	if v != VerdictPass {
		t.Errorf("Unmarshal = %v", v)
	}
}

func TestParseEcosystem(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Ecosystem
	}{
		{"rust", EcosystemRust},
		{"Python", EcosystemPython},
		{"js", EcosystemNode},
		{"javascript", EcosystemNode},
		{".net", EcosystemDotNet},
		{"csharp", EcosystemDotNet},
	} {
		got, err := ParseEcosystem(tt.in)
		if err != nil {
			t.Errorf("ParseEcosystem(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEcosystem(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseEcosystem("cobol"); err == nil {
		t.Error("ParseEcosystem should reject unknown names")
	}
}

func TestLicenseFallback(t *testing.T) {
	d := New("serde", "1.0.0", EcosystemRust)
	if got := d.License(); got != "unknown" {
		t.Errorf("License() = %q, want unknown", got)
	}
	d.LicenseRaw = "The MIT License"
	if got := d.License(); got != "The MIT License" {
		t.Errorf("License() = %q", got)
	}
	d.LicenseSPDX = "MIT"
	if got := d.License(); got != "MIT" {
		t.Errorf("License() = %q, SPDX should win", got)
	}
}

func TestDedupKey(t *testing.T) {
	// Python keys case-insensitively by name only.
	a := New("Django", "4.2", EcosystemPython)
	b := New("django", "5.0", EcosystemPython)
	if a.DedupKey() != b.DedupKey() {
		t.Error("python dedup keys should collapse case and version")
	}

	// Other ecosystems key on the exact name and version.
	c := New("serde", "1.0.0", EcosystemRust)
	d := New("serde", "1.0.1", EcosystemRust)
	if c.DedupKey() == d.DedupKey() {
		t.Error("rust dedup keys should distinguish versions")
	}

	// Same coordinates in different ecosystems never collide.
	e := New("com.example:lib", "1.0", EcosystemJava)
	f := New("com.example:lib", "1.0", EcosystemDotNet)
	if e.DedupKey() == f.DedupKey() {
		t.Error("dedup keys should be ecosystem-scoped")
	}
}

func TestNewPlaceholders(t *testing.T) {
	d := New("flask", "3.0", EcosystemPython)
	if d.Risk != RiskUnknown || d.Verdict != VerdictWarn || d.Source != SourceUnknown {
		t.Errorf("placeholders = %v/%v/%v", d.Risk, d.Verdict, d.Source)
	}
}
