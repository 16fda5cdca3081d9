package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/mkehler/worldscope/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested resource doesn't exist
	// upstream (a name, region, or code with no matches).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API
// requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based response cache with the given TTL in the
// default cache directory. See [httputil.NewCache].
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// PathEscape percent-encodes a path segment for use in request URLs.
// Convenience wrapper around [url.PathEscape].
func PathEscape(s string) string { return url.PathEscape(s) }
