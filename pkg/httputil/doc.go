// Package httputil provides HTTP utilities for the restcountries client.
//
// # Overview
//
// This package provides the infrastructure shared by remote API calls:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores JSON-decoded responses in the filesystem
// (~/.cache/worldscope/) with a configurable TTL. The full country list is
// large and changes rarely, so caching it makes repeated browsing fast and
// keeps load off the public API.
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("restcountries:all", &countries)
//	if !ok {
//	    countries = fetchFromAPI()
//	    cache.Set("restcountries:all", countries)
//	}
//
// Cache keys should be namespaced per endpoint to avoid collisions.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures (network errors and
// 5xx responses) wrapped in [RetryableError], with exponential backoff.
// Non-retryable errors are returned immediately.
//
// The cache can be cleared via `worldscope cache clear` or by deleting the
// cache directory.
package httputil
