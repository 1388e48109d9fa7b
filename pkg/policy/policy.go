// Package policy maps licenses to pass/warn/error verdicts.
//
// # Overview
//
// A policy is a table of license names to verdicts plus a default for
// anything unlisted. Policies load from TOML files:
//
//	[policy]
//	default = "warn"
//
//	[policy.licenses]
//	"MIT" = "pass"
//	"GPL-3.0" = "error"
//	"unknown" = "warn"
//
// [Load] searches an explicit override path, the project directory, and
// the user config directory in that order, falling back to [Default].
// A config file that exists but cannot be parsed is a hard error; the
// caller aborts rather than silently auditing with the wrong rules.
//
// # Verdict Resolution
//
// [Apply] resolves a license string in four steps: an exact table match
// wins, the "unknown" rule covers missing licenses, compound SPDX
// expressions are evaluated against the table with [spdx.Evaluate], and
// everything else gets the default verdict.
package policy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/errors"
	"github.com/matzehuels/licensegate/pkg/spdx"
)

// FileName is the project-local policy file name.
const FileName = "licensegate.toml"

// Config is a license policy: per-license verdicts plus a default for
// anything unlisted. The special key "unknown" covers dependencies with
// no license information at all.
type Config struct {
	Default  deps.Verdict            `toml:"default"`
	Licenses map[string]deps.Verdict `toml:"licenses"`
}

// fileConfig is the on-disk layout: the policy lives in a [policy]
// table so config files can grow unrelated sections later.
type fileConfig struct {
	Policy Config `toml:"policy"`
}

// Default returns the built-in policy used when no config file exists.
func Default() Config {
	return Config{
		Default: deps.VerdictWarn,
		Licenses: map[string]deps.Verdict{
			"MIT":          deps.VerdictPass,
			"Apache-2.0":   deps.VerdictPass,
			"BSD-2-Clause": deps.VerdictPass,
			"BSD-3-Clause": deps.VerdictPass,
			"ISC":          deps.VerdictPass,
			"LGPL-2.1":     deps.VerdictWarn,
			"GPL-2.0":      deps.VerdictError,
			"GPL-3.0":      deps.VerdictError,
			"AGPL-3.0":     deps.VerdictError,
			"unknown":      deps.VerdictWarn,
		},
	}
}

// Load resolves the policy for a project. Search order:
//
//  1. override, when non-empty (missing or malformed file is an error)
//  2. <projectDir>/licensegate.toml
//  3. <user config dir>/licensegate/config.toml
//  4. the built-in [Default]
//
// A found file that fails to parse aborts the load.
func Load(projectDir, override string) (Config, error) {
	if override != "" {
		return loadFile(override)
	}
	local := filepath.Join(projectDir, FileName)
	if fileExists(local) {
		return loadFile(local)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		global := filepath.Join(configDir, "licensegate", "config.toml")
		if fileExists(global) {
			return loadFile(global)
		}
	}
	return Default(), nil
}

func loadFile(path string) (Config, error) {
	var file fileConfig
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot load policy from %s", path)
	}
	cfg := file.Policy
	// Absent fields keep the built-in behavior.
	if !meta.IsDefined("policy", "default") {
		cfg.Default = deps.VerdictWarn
	}
	if cfg.Licenses == nil {
		cfg.Licenses = map[string]deps.Verdict{}
	}
	return cfg, nil
}

// Apply resolves a license string to a verdict under the policy.
func (c Config) Apply(license string) deps.Verdict {
	trimmed := strings.TrimSpace(license)
	if trimmed == "" {
		trimmed = "unknown"
	}
	if verdict, ok := c.Licenses[trimmed]; ok {
		return verdict
	}
	if strings.EqualFold(trimmed, "unknown") {
		if verdict, ok := c.Licenses["unknown"]; ok {
			return verdict
		}
		return c.Default
	}
	if isCompound(trimmed) {
		return spdx.Evaluate(trimmed, c.lookup, c.Default)
	}
	if verdict, ok := c.Licenses[spdx.Normalize(trimmed)]; ok {
		return verdict
	}
	return c.Default
}

// lookup resolves a single identifier during expression evaluation.
// Identifiers missing from the table get the default verdict.
func (c Config) lookup(id string) deps.Verdict {
	if verdict, ok := c.Licenses[id]; ok {
		return verdict
	}
	return c.Default
}

// isCompound reports whether a license string needs expression
// evaluation rather than a plain table lookup.
func isCompound(license string) bool {
	if strings.ContainsAny(license, "/()") {
		return true
	}
	for _, word := range strings.Fields(license) {
		switch strings.ToUpper(word) {
		case "OR", "AND", "WITH":
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
