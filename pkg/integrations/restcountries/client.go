// Package restcountries implements the client for the restcountries.com
// v3.1 API, the application's single remote data source.
package restcountries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkehler/worldscope/pkg/countries"
	"github.com/mkehler/worldscope/pkg/httputil"
	"github.com/mkehler/worldscope/pkg/integrations"
)

// DefaultBaseURL is the public restcountries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// Client provides access to the restcountries.com API.
//
// The four fetch methods are stateless request/response wrappers: no local
// state, no result massaging beyond JSON decoding. Transport errors
// propagate unchanged as [integrations.ErrNetwork] or
// [integrations.ErrNotFound]; the catalog layer owns user-facing error
// translation.
//
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// NewClient creates a restcountries client with the given response cache
// backend. Pass nil to disable response caching.
func NewClient(cache *httputil.Cache, opts ...Option) *Client {
	c := &Client{
		Client:  integrations.NewClient(cache, map[string]string{"Accept": "application/json"}),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCachedClient creates a client with a file-based response cache using
// the given TTL in the default cache directory.
func NewCachedClient(ttl time.Duration, opts ...Option) (*Client, error) {
	cache, err := integrations.NewCache(ttl)
	if err != nil {
		return nil, err
	}
	return NewClient(cache, opts...), nil
}

// FetchAll retrieves the complete country list.
// If refresh is true the response cache is bypassed.
func (c *Client) FetchAll(ctx context.Context, refresh bool) ([]countries.Country, error) {
	var list []countries.Country
	err := c.Cached(ctx, "restcountries:all", refresh, &list, func() error {
		return c.Get(ctx, c.baseURL+"/all", &list)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FetchByName retrieves countries whose name matches the given term.
// Returns [integrations.ErrNotFound] when nothing matches.
func (c *Client) FetchByName(ctx context.Context, name string, refresh bool) ([]countries.Country, error) {
	return c.fetchList(ctx, "name", name, refresh)
}

// FetchByRegion retrieves the countries of a region (e.g. "Europe").
func (c *Client) FetchByRegion(ctx context.Context, region string, refresh bool) ([]countries.Country, error) {
	return c.fetchList(ctx, "region", region, refresh)
}

// FetchByCode retrieves countries by cca3 code. The API returns a sequence
// even for a single code; callers that want one record take the first
// element. Used for the detail view and for resolving border codes.
func (c *Client) FetchByCode(ctx context.Context, code string, refresh bool) ([]countries.Country, error) {
	return c.fetchList(ctx, "alpha", code, refresh)
}

func (c *Client) fetchList(ctx context.Context, endpoint, arg string, refresh bool) ([]countries.Country, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: empty %s", integrations.ErrNotFound, endpoint)
	}

	key := fmt.Sprintf("restcountries:%s:%s", endpoint, arg)
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, endpoint, integrations.PathEscape(arg))

	var list []countries.Country
	err := c.Cached(ctx, key, refresh, &list, func() error {
		if err := c.Get(ctx, url, &list); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: %s %q", integrations.ErrNotFound, endpoint, arg)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
