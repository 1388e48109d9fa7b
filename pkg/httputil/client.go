package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds each registry request end to end.
const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client suitable for registry lookups. One
// client is shared across all requests of a scan so connections are
// reused.
func NewClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}
