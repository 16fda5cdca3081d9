// Package favorites persists each user's saved countries.
//
// Favorites are scoped to the signed-in user: every user id maps to its own
// storage key, so switching accounts never leaks another user's list. When
// nobody is signed in the list is empty and mutations are rejected.
package favorites

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mkehler/worldscope/pkg/auth"
	"github.com/mkehler/worldscope/pkg/countries"
	"github.com/mkehler/worldscope/pkg/errors"
	"github.com/mkehler/worldscope/pkg/storage"
)

// Store keeps the favorites list of the currently signed-in user, persisting
// every change synchronously. It tracks identity changes through the auth
// manager, so after a logout or account switch the in-memory list never
// reflects the previous user.
type Store struct {
	storage storage.Store
	auth    *auth.Manager
	logger  *log.Logger

	mu     sync.Mutex
	userID string
	items  []countries.Country

	cancel func()
}

// NewStore creates a favorites store bound to the given auth manager.
// Pass nil for logger to use the default logger.
func NewStore(st storage.Store, mgr *auth.Manager, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{storage: st, auth: mgr, logger: logger}
	s.cancel = mgr.Subscribe(func(event auth.Event) {
		s.handleAuthEvent(event)
	})
	return s
}

// Close detaches the store from auth events.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Store) handleAuthEvent(event auth.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch event.Type {
	case auth.EventLoggedIn:
		s.loadLocked(context.Background(), event.Session.ID)
	case auth.EventLoggedOut:
		s.userID = ""
		s.items = nil
	}
}

// sync re-reads the persisted list whenever the signed-in identity differs
// from the one the cached list belongs to. Caller holds s.mu.
func (s *Store) syncLocked(ctx context.Context) {
	id := ""
	if sess := s.auth.CurrentUser(ctx); sess != nil {
		id = sess.ID
	}
	if id == s.userID {
		return
	}
	if id == "" {
		s.userID = ""
		s.items = nil
		return
	}
	s.loadLocked(ctx, id)
}

func (s *Store) loadLocked(ctx context.Context, userID string) {
	s.userID = userID
	s.items = nil

	raw, ok, err := s.storage.Get(ctx, storage.FavoritesKey(userID))
	if err != nil {
		s.logger.Warn("could not read favorites", "user", userID, "err", err)
		return
	}
	if !ok {
		return
	}
	var items []countries.Country
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("discarding malformed favorites data", "user", userID, "err", err)
		return
	}
	s.items = items
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode favorites")
	}
	if err := s.storage.Set(ctx, storage.FavoritesKey(s.userID), raw); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "persist favorites")
	}
	return nil
}

// List returns the signed-in user's favorites in insertion order.
// When nobody is signed in the list is empty.
func (s *Store) List(ctx context.Context) []countries.Country {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(ctx)
	return append([]countries.Country(nil), s.items...)
}

// IsFavorite reports whether the country code is in the signed-in user's
// list. Always false when nobody is signed in.
func (s *Store) IsFavorite(ctx context.Context, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(ctx)
	return s.indexOfLocked(code) >= 0
}

// Add saves the country to the signed-in user's list and persists the
// change. Adding a country that is already saved is a no-op.
func (s *Store) Add(ctx context.Context, country countries.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(ctx)
	if s.userID == "" {
		return errors.New(errors.ErrCodeNotAuthenticated, "sign in to save favorites")
	}
	if s.indexOfLocked(country.Code) >= 0 {
		return nil
	}
	s.items = append(s.items, country)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	s.logger.Debug("favorite added", "user", s.userID, "code", country.Code)
	return nil
}

// Remove deletes the country from the signed-in user's list and persists the
// change. Removing a country that is not saved is a no-op.
func (s *Store) Remove(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(ctx)
	if s.userID == "" {
		return errors.New(errors.ErrCodeNotAuthenticated, "sign in to manage favorites")
	}
	i := s.indexOfLocked(code)
	if i < 0 {
		return nil
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = append(s.items[:i], append([]countries.Country{removed}, s.items[i:]...)...)
		return err
	}
	s.logger.Debug("favorite removed", "user", s.userID, "code", code)
	return nil
}

// Toggle adds the country when absent and removes it when present,
// returning whether it is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, country countries.Country) (bool, error) {
	if s.IsFavorite(ctx, country.Code) {
		return false, s.Remove(ctx, country.Code)
	}
	return true, s.Add(ctx, country)
}

// Count returns the number of saved countries.
func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncLocked(ctx)
	return len(s.items)
}

// indexOfLocked matches by exact country code. Caller holds s.mu.
func (s *Store) indexOfLocked(code string) int {
	for i, item := range s.items {
		if item.Code == code {
			return i
		}
	}
	return -1
}
