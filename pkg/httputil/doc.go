// Package httputil provides HTTP utilities for package registry clients.
//
// # Overview
//
// This package provides infrastructure used by all registry API clients:
//
//   - [NewClient]: Shared HTTP client with a request timeout
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient
// failures (network errors, 5xx server errors). Wrap such failures in
// [RetryableError] so the retry loop knows to attempt again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Request timeout: 10 seconds
//   - Max retries: 3
//   - Base backoff: 1 second (doubling each retry)
package httputil
