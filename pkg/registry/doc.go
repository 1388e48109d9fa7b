// Package registry provides shared infrastructure for package registry
// API clients.
//
// # Overview
//
// Each supported ecosystem has a registry client in its own subpackage
// (crates, pypi, npm, maven). All of them embed [Client], which handles
// HTTP requests with automatic retries, status mapping, and common
// request headers.
//
// Clients implement [Fetcher], the one-method contract the enrichment
// step consumes:
//
//	license, found, err := fetcher.FetchLicense(ctx, "serde", "1.0.193")
//
// A missing package or missing license field reports found=false with a
// nil error; errors are reserved for transport and decode failures.
//
// # Enrichment
//
// [Enrich] resolves licenses for a batch of dependencies concurrently.
// Lookups run in fixed-size batches so a large dependency tree does not
// open thousands of simultaneous connections. Individual lookup
// failures are logged and skipped; one unreachable package never fails
// a scan.
//
// # Error Handling
//
// [ErrNotFound] is returned when a package doesn't exist in a registry.
// [ErrNetwork] covers HTTP failures; 5xx responses and transport errors
// are wrapped in [httputil.RetryableError] so requests retry with
// backoff before giving up.
package registry
