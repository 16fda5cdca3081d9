// Package integrations provides the shared HTTP plumbing for remote API
// clients.
//
// The [Client] type bundles an http.Client with sane timeouts, optional
// response caching, retry with exponential backoff for transient failures,
// and default request headers. Concrete API clients (restcountries) embed it
// and add endpoint-specific methods.
//
// Error contract: requests that fail at the transport level or with a 5xx
// status return [ErrNetwork] (wrapped retryable); a 404 returns
// [ErrNotFound]. Callers translate these into user-facing messages; nothing
// in this package talks to the user.
package integrations
