// Package catalog holds the in-memory country list and derives the filtered
// view the UI renders.
//
// The catalog fetches the full list once, then answers every filter change
// with a pure synchronous projection over that list. All three criteria
// (search term, region, language) are independent case-insensitive
// predicates composed with logical AND; applying them in any order yields
// the same result, and clearing them restores the full list in its original
// order.
//
// Region filtering is intentionally client-side like the other two criteria.
// The remote API's region endpoint still exists for direct lookups, but the
// catalog never swaps its in-memory list for a server response, so filter
// behavior stays uniform.
package catalog

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mkehler/worldscope/pkg/countries"
)

// ErrFetchMessage is the user-facing message shown when loading the country
// list fails.
const ErrFetchMessage = "Failed to fetch countries. Please try again later."

// Fetcher is the slice of the restcountries client the catalog needs.
type Fetcher interface {
	FetchAll(ctx context.Context, refresh bool) ([]countries.Country, error)
}

// State is a snapshot of the catalog for rendering. Snapshots handed out by
// [Catalog.Snapshot] and OnChange carry their own copies of the slices, so
// consumers may hold them across further catalog mutations.
type State struct {
	Countries        []countries.Country // full fetched list, original order
	Filtered         []countries.Country // derived view under current criteria
	Loading          bool
	Err              string // user-facing message, empty when healthy
	SearchTerm       string
	SelectedRegion   string
	SelectedLanguage string
}

func (s State) clone() State {
	out := s
	out.Countries = append([]countries.Country(nil), s.Countries...)
	out.Filtered = append([]countries.Country(nil), s.Filtered...)
	return out
}

// changeBuffer bounds the queue of undelivered snapshots. When a subscriber
// falls this far behind, the oldest queued snapshot is dropped.
const changeBuffer = 64

// Catalog owns the fetched country list and the filter criteria.
// All methods are safe for concurrent use.
type Catalog struct {
	fetcher Fetcher
	logger  *log.Logger

	mu          sync.Mutex
	gen         int // load generation, guards against stale responses
	state       State
	onChange    func(State)
	changes     chan State
	dispatching bool
	closed      bool
}

// New creates a catalog over the given fetcher.
// Pass nil for logger to use the default logger.
func New(fetcher Fetcher, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		fetcher: fetcher,
		logger:  logger,
		changes: make(chan State, changeBuffer),
	}
}

// OnChange registers a single callback invoked with a fresh snapshot after
// every state change. Snapshots arrive in the order the changes happened, so
// the last delivery always reflects the latest state. Used by the TUI to
// repaint; pass nil to unregister.
func (c *Catalog) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
	if fn != nil && !c.dispatching && !c.closed {
		c.dispatching = true
		go c.dispatch()
	}
}

// Close stops snapshot delivery and releases the dispatch goroutine.
// Safe to call more than once; further state changes are still applied but
// no longer notified.
func (c *Catalog) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.changes)
}

// dispatch drains queued snapshots in FIFO order, one subscriber call at a
// time. Runs until Close.
func (c *Catalog) dispatch() {
	for snap := range c.changes {
		c.mu.Lock()
		fn := c.onChange
		c.mu.Unlock()
		if fn != nil {
			fn(snap)
		}
	}
}

// Load fetches the full country list, replacing any previous list. While the
// fetch is in flight Loading is true. On failure the catalog keeps its
// last-known-good list and sets the user-facing error message.
//
// A Load started after this one supersedes it: if this call's response
// arrives late, it is discarded rather than overwriting newer state.
func (c *Catalog) Load(ctx context.Context, refresh bool) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state.Loading = true
	c.state.Err = ""
	c.notifyLocked()
	c.mu.Unlock()

	list, err := c.fetcher.FetchAll(ctx, refresh)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("discarding superseded country load", "gen", gen)
		return
	}

	c.state.Loading = false
	if err != nil {
		c.logger.Warn("country load failed", "err", err)
		c.state.Err = ErrFetchMessage
		c.notifyLocked()
		return
	}

	c.state.Err = ""
	c.state.Countries = list
	c.applyFiltersLocked()
}

// SearchCountries sets the committed search term and recomputes the view.
// Callers debounce rapid input with a [Debouncer] before committing.
func (c *Catalog) SearchCountries(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchTerm = term
	c.applyFiltersLocked()
}

// FilterByRegion sets the region criterion; empty clears it.
func (c *Catalog) FilterByRegion(region string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedRegion = region
	c.applyFiltersLocked()
}

// FilterByLanguage sets the language criterion; empty clears it.
func (c *Catalog) FilterByLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedLanguage = lang
	c.applyFiltersLocked()
}

// ResetFilters clears all three criteria, restoring the full list.
func (c *Catalog) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchTerm = ""
	c.state.SelectedRegion = ""
	c.state.SelectedLanguage = ""
	c.applyFiltersLocked()
}

// Snapshot returns a copy of the current state with independently owned
// slices.
func (c *Catalog) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// applyFiltersLocked recomputes the filtered view. Caller holds c.mu.
func (c *Catalog) applyFiltersLocked() {
	result := c.state.Countries

	if region := c.state.SelectedRegion; region != "" {
		result = filter(result, func(country countries.Country) bool {
			return country.InRegion(region)
		})
	}
	if lang := c.state.SelectedLanguage; lang != "" {
		result = filter(result, func(country countries.Country) bool {
			return country.SpeaksLanguage(lang)
		})
	}
	if term := c.state.SearchTerm; term != "" {
		result = filter(result, func(country countries.Country) bool {
			return country.MatchesName(term)
		})
	}

	c.state.Filtered = result
	c.notifyLocked()
}

// notifyLocked queues the current state for ordered delivery. Caller holds
// c.mu. When the queue is full the oldest undelivered snapshot is dropped,
// never the newest, so the subscriber still converges on the latest state.
func (c *Catalog) notifyLocked() {
	if c.onChange == nil || c.closed {
		return
	}
	snap := c.state.clone()
	for {
		select {
		case c.changes <- snap:
			return
		default:
		}
		select {
		case <-c.changes:
		default:
		}
	}
}

func filter(list []countries.Country, keep func(countries.Country) bool) []countries.Country {
	out := make([]countries.Country, 0, len(list))
	for _, country := range list {
		if keep(country) {
			out = append(out, country)
		}
	}
	return out
}
