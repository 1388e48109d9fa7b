// Package pipeline orchestrates a license audit from manifest to
// verdict.
//
// # Overview
//
// [Scan] runs the full sequence for one project directory:
//
//  1. Load the license policy ([policy.Load])
//  2. Detect present ecosystems ([deps.DetectEcosystems])
//  3. Parse manifests into dependencies ([deps.Collect])
//  4. Optionally resolve missing licenses online ([registry.Enrich])
//  5. Classify risk and apply policy verdicts
//
// [ScanWorkspace] discovers nested projects under a root and scans each
// one independently. Projects run concurrently but are isolated: a
// failing or panicking project records its error and never disturbs its
// siblings, and results always come back in discovery order.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/deps/ecosystems"
	"github.com/matzehuels/licensegate/pkg/errors"
	"github.com/matzehuels/licensegate/pkg/httputil"
	"github.com/matzehuels/licensegate/pkg/policy"
	"github.com/matzehuels/licensegate/pkg/registry"
	"github.com/matzehuels/licensegate/pkg/registry/crates"
	"github.com/matzehuels/licensegate/pkg/registry/maven"
	"github.com/matzehuels/licensegate/pkg/registry/npm"
	"github.com/matzehuels/licensegate/pkg/registry/pypi"
	"github.com/matzehuels/licensegate/pkg/spdx"
)

// Options configures a scan run.
type Options struct {
	Online     bool             // Resolve missing licenses from package registries
	ConfigPath string           // Explicit policy file; empty uses the search chain
	Exclude    []deps.Ecosystem // Ecosystems to skip even when detected
	BatchSize  int              // Concurrent registry lookups per batch; 0 uses the default

	// HTTPClient overrides the registry HTTP client; nil uses a shared
	// default. Tests point this at httptest servers.
	HTTPClient *http.Client

	// Fetchers overrides the registry clients per ecosystem; nil uses
	// the real registries. A nil map entry means no registry for that
	// ecosystem.
	Fetchers map[deps.Ecosystem]registry.Fetcher

	Logf     func(format string, args ...any) // Diagnostic log sink; may be nil
	Progress func(done, total int)            // Enrichment progress; may be nil
}

// Result is the outcome of scanning one project directory.
type Result struct {
	Path         string            `json:"path"`
	Ecosystems   []deps.Ecosystem  `json:"ecosystems"`
	Dependencies []deps.Dependency `json:"dependencies"`

	// Config is the policy the verdicts were produced under.
	Config policy.Config `json:"-"`
}

// HasErrors reports whether any dependency carries an error verdict.
// The CLI exits non-zero when this is true.
func (r Result) HasErrors() bool {
	for _, d := range r.Dependencies {
		if d.Verdict == deps.VerdictError {
			return true
		}
	}
	return false
}

// Scan audits the project at dir and returns classified dependencies.
//
// A policy config that exists but cannot load is fatal. A directory
// with no recognized manifests (after exclusions) fails with
// [errors.ErrCodeNoProjects]; auditing nothing must not look like a
// clean pass.
func Scan(ctx context.Context, dir string, opts Options) (Result, error) {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	cfg, err := policy.Load(dir, opts.ConfigPath)
	if err != nil {
		return Result{}, err
	}

	detected := deps.DetectEcosystems(dir)
	var active []deps.Ecosystem
	for _, eco := range detected {
		if !slices.Contains(opts.Exclude, eco) {
			active = append(active, eco)
		}
	}
	if len(active) == 0 {
		return Result{}, errors.New(errors.ErrCodeNoProjects, "no supported manifests found in %s", dir)
	}

	items := deps.Collect(dir, ecosystems.Analyzers(active), logf)

	if opts.Online {
		fetchers := opts.Fetchers
		if fetchers == nil {
			fetchers = DefaultFetchers(opts.HTTPClient)
		}
		pick := func(eco deps.Ecosystem) registry.Fetcher { return fetchers[eco] }
		enrichOpts := registry.EnrichOptions{
			BatchSize: opts.BatchSize,
			Progress:  opts.Progress,
			Logf:      logf,
		}
		if err := registry.Enrich(ctx, items, pick, enrichOpts); err != nil {
			return Result{}, err
		}
	}

	classify(cfg, items)

	return Result{
		Path:         dir,
		Ecosystems:   active,
		Dependencies: items,
		Config:       cfg,
	}, nil
}

// ScanWorkspace discovers projects under root and scans each one.
// Results come back in discovery order. Per-project failures land in
// [deps.ProjectScan.Err]; the returned error is reserved for an empty
// workspace or a cancelled context.
func ScanWorkspace(ctx context.Context, root string, opts Options) ([]deps.ProjectScan, error) {
	projects, err := deps.DiscoverProjects(root)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errors.New(errors.ErrCodeNoProjects, "no projects found under %s", root)
	}

	// One registry client set for the whole run; every sub-project
	// scan shares the same HTTP client.
	if opts.Online && opts.Fetchers == nil {
		opts.Fetchers = DefaultFetchers(opts.HTTPClient)
	}

	scans := make([]deps.ProjectScan, len(projects))

	// Projects are isolated on purpose: no shared errgroup error, so
	// one broken project never cancels its siblings.
	var group errgroup.Group
	for i, dir := range projects {
		i, dir := i, dir
		group.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					scans[i].Err = fmt.Errorf("scan panicked: %v", r)
				}
			}()
			scans[i].Name = projectName(root, dir)
			scans[i].Path = dir
			result, err := Scan(ctx, dir, opts)
			if err != nil {
				scans[i].Err = err
				return nil
			}
			scans[i].Dependencies = result.Dependencies
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scans, nil
}

// DefaultFetchers returns the production registry clients. The .NET
// ecosystem has no entry; NuGet metadata is out of reach without API
// keys, so those dependencies stay unknown unless the manifest carries
// a license.
func DefaultFetchers(httpClient *http.Client) map[deps.Ecosystem]registry.Fetcher {
	if httpClient == nil {
		httpClient = httputil.NewClient()
	}
	return map[deps.Ecosystem]registry.Fetcher{
		deps.EcosystemRust:   crates.NewClient(httpClient),
		deps.EcosystemPython: pypi.NewClient(httpClient),
		deps.EcosystemNode:   npm.NewClient(httpClient),
		deps.EcosystemJava:   maven.NewClient(httpClient),
	}
}

// classify stamps risk tier and policy verdict onto every dependency.
func classify(cfg policy.Config, items []deps.Dependency) {
	for i := range items {
		license := items[i].License()
		items[i].Risk = spdx.Classify(license)
		items[i].Verdict = cfg.Apply(license)
	}
}

func projectName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return filepath.Base(dir)
	}
	return rel
}
