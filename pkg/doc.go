// Package pkg provides the core libraries for the worldscope country
// explorer.
//
// # Overview
//
// Worldscope lets users explore the countries of the world from the
// terminal: browse and filter the full catalog, look up details for a single
// country, and keep a per-account favorites list. The pkg directory is
// organized into three main areas:
//
//  1. Domain logic (country data, catalog filtering, favorites, accounts)
//  2. Infrastructure (storage backends, caching, retries, observability)
//  3. Integrations (the restcountries API client)
//
// # Architecture
//
// The typical data flow:
//
//	restcountries.com API
//	         ↓
//	    [integrations/restcountries] (fetch + response cache)
//	         ↓
//	    [catalog] (in-memory list + composable filters)
//	         ↓
//	    terminal UI (list, detail, favorites)
//
// Account state flows separately: [auth] persists the registry and session
// through a [storage] backend, and [favorites] keys its lists off the
// signed-in user.
//
// # Main Packages
//
// [countries] - Country model decoded from the restcountries v3.1 payload,
// with accessors that degrade missing fields to a placeholder and
// case-insensitive matching predicates.
//
// [catalog] - In-memory catalog over the fetched list. Search, region, and
// language criteria compose with AND; a debouncer coalesces rapid search
// input; superseded loads are discarded.
//
// [favorites] - Per-user favorites, persisted synchronously and scoped by
// the signed-in session.
//
// [auth] - Local demo accounts: registration, login, logout, and session
// change notifications for dependent state.
//
// [integrations] - Shared HTTP client functionality (caching, retries,
// status mapping) with the restcountries client in a subpackage.
//
// [storage] - Key-value persistence behind a small interface: file (CLI
// default), memory (testing), Redis, and MongoDB backends.
//
// [httputil] - File-based response cache with TTL expiry and retry with
// exponential backoff.
//
// [observability] - Optional instrumentation hooks for HTTP, cache, and
// account events.
//
// [errors] - Structured errors with stable codes and input validation
// helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/catalog/   # Specific package
//
// [countries]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/countries
// [catalog]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/catalog
// [favorites]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/favorites
// [auth]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/auth
// [integrations]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/integrations
// [storage]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/storage
// [httputil]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mkehler/worldscope/pkg/errors
package pkg
