// Package rust analyzes Rust projects managed by Cargo.
//
// The analyzer parses Cargo.lock and returns every external crate,
// skipping local workspace members (lock entries without a source field).
// When the crate's sources are present in the local Cargo registry cache,
// the license declared in its Cargo.toml is used as an offline fallback.
package rust

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/licensegate/pkg/deps"
)

// Analyzer extracts dependencies from Cargo.lock.
type Analyzer struct {
	// CargoHome overrides the cargo home directory used for the local
	// registry cache lookup. Empty means $CARGO_HOME, then ~/.cargo.
	CargoHome string
}

// Ecosystem returns [deps.EcosystemRust].
func (a *Analyzer) Ecosystem() deps.Ecosystem { return deps.EcosystemRust }

// Analyze parses Cargo.lock under dir. A missing lockfile yields no
// results; a malformed one is an error.
func (a *Analyzer) Analyze(dir string) ([]deps.Dependency, error) {
	path := filepath.Join(dir, "Cargo.lock")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lock cargoLock
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, err
	}

	var found []deps.Dependency
	for _, pkg := range lock.Package {
		// Entries without a source are local workspace members.
		if pkg.Source == "" {
			continue
		}
		d := deps.New(pkg.Name, pkg.Version, deps.EcosystemRust)
		if license := a.licenseFromCargoCache(pkg.Name, pkg.Version); license != "" {
			d.LicenseRaw = license
			d.LicenseSPDX = license
			d.Source = deps.SourceCache
		}
		found = append(found, d)
	}
	return found, nil
}

// licenseFromCargoCache looks up the license field for a crate in the
// local Cargo registry cache. Cargo stores downloaded crate sources at
// $CARGO_HOME/registry/src/<registry-host>/<name>-<version>/Cargo.toml.
// Returns "" when the crate is not cached or declares no license.
func (a *Analyzer) licenseFromCargoCache(name, version string) string {
	home := a.CargoHome
	if home == "" {
		home = os.Getenv("CARGO_HOME")
	}
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(userHome, ".cargo")
	}

	registrySrc := filepath.Join(home, "registry", "src")
	entries, err := os.ReadDir(registrySrc)
	if err != nil {
		return ""
	}

	crateDir := name + "-" + version
	for _, e := range entries {
		manifest := filepath.Join(registrySrc, e.Name(), crateDir, "Cargo.toml")
		data, err := os.ReadFile(manifest)
		if err != nil {
			continue
		}
		var m crateManifest
		if err := toml.Unmarshal(data, &m); err != nil {
			continue
		}
		if m.Package.License != "" {
			return m.Package.License
		}
	}
	return ""
}

type cargoLock struct {
	Package []cargoLockPackage `toml:"package"`
}

type cargoLockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

type crateManifest struct {
	Package struct {
		License string `toml:"license"`
	} `toml:"package"`
}
