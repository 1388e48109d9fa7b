package registry

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/spdx"
)

// DefaultBatchSize bounds concurrent registry lookups per batch.
const DefaultBatchSize = 75

// EnrichOptions configures a batch enrichment run. The zero value uses
// the default batch size with no progress reporting.
type EnrichOptions struct {
	BatchSize int                              // Lookups in flight per batch; 0 means DefaultBatchSize
	Progress  func(done, total int)            // Called after each batch completes; may be nil
	Logf      func(format string, args ...any) // Per-item failure log sink; may be nil
}

// Enrich fills in missing licenses by querying registries. Dependencies
// that already carry a license are left alone. Lookups run concurrently
// in fixed-size batches; each batch joins before results are written
// back, so items is never mutated while goroutines are in flight.
//
// Individual lookup failures are logged and skipped. Enrich only
// returns an error when ctx is cancelled.
func Enrich(ctx context.Context, items []deps.Dependency, pick func(deps.Ecosystem) Fetcher, opts EnrichOptions) error {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var pending []int
	for i := range items {
		if items[i].LicenseRaw == "" && items[i].LicenseSPDX == "" && pick(items[i].Ecosystem) != nil {
			pending = append(pending, i)
		}
	}

	total := len(pending)
	done := 0
	for start := 0; start < total; start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+batchSize, total)
		batch := pending[start:end]

		// Each task writes only its own slot, so the batch needs no lock.
		results := make([]string, len(batch))

		group, groupCtx := errgroup.WithContext(ctx)
		for slot, idx := range batch {
			slot, idx := slot, idx
			group.Go(func() error {
				item := items[idx]
				license, found, err := pick(item.Ecosystem).FetchLicense(groupCtx, item.Name, item.Version)
				if err != nil {
					logf("registry lookup failed for %s@%s: %v", item.Name, item.Version, err)
					return nil
				}
				if found {
					results[slot] = license
				}
				return nil
			})
		}
		// Tasks swallow their own errors, so Wait only reflects ctx.
		if err := group.Wait(); err != nil {
			return err
		}

		for slot, idx := range batch {
			if results[slot] == "" {
				continue
			}
			items[idx].LicenseRaw = results[slot]
			items[idx].LicenseSPDX = spdx.Normalize(results[slot])
			items[idx].Source = deps.SourceRegistry
		}

		done += len(batch)
		if opts.Progress != nil {
			opts.Progress(done, total)
		}
	}
	return nil
}
