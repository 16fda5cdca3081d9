// Package auth provides the simulated, local-only authentication layer: a
// credential store persisting the user registry and the current session
// record, and a session manager exposing login, registration, and logout
// with change notifications.
//
// Credentials are compared in plain text against the local registry. This is
// a deliberate property of the demo construct (there is no server and no
// real account to protect) and must not be copied into anything
// production-grade.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mkehler/worldscope/pkg/storage"
)

// User is one registry entry. Unique by Email; immutable after creation.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the public identity of the authenticated user: a User with the
// password stripped. At most one session exists at a time.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CredentialStore persists the user registry and the current-session record
// under the "users" and "currentUser" storage keys.
//
// The store enforces no invariants; the session manager owns uniqueness and
// lifecycle rules. Corrupt persisted data is absorbed: a malformed registry
// reads as empty, a malformed session reads as absent. Corruption is logged
// for diagnostics but never surfaced to callers.
type CredentialStore struct {
	store  storage.Store
	logger *log.Logger
}

// NewCredentialStore creates a credential store on top of the given backend.
// Pass nil for logger to use the default logger.
func NewCredentialStore(store storage.Store, logger *log.Logger) *CredentialStore {
	if logger == nil {
		logger = log.Default()
	}
	return &CredentialStore{store: store, logger: logger}
}

// ListUsers returns the full registry. An absent or malformed "users" key
// yields an empty slice, never an error.
func (c *CredentialStore) ListUsers(ctx context.Context) []User {
	data, ok, err := c.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		c.logger.Warn("failed to read user registry, treating as empty", "err", err)
		return []User{}
	}
	if !ok {
		return []User{}
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		c.logger.Warn("corrupt user registry, treating as empty", "err", err)
		return []User{}
	}
	return users
}

// SaveUsers overwrites the full registry.
func (c *CredentialStore) SaveUsers(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyUsers, data); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

// ReadSession returns the persisted current session, or nil when no session
// exists or the stored record is malformed.
func (c *CredentialStore) ReadSession(ctx context.Context) *Session {
	data, ok, err := c.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		c.logger.Warn("failed to read session, treating as anonymous", "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		c.logger.Warn("corrupt session record, treating as anonymous", "err", err)
		return nil
	}
	return &sess
}

// WriteSession persists sess as the current session.
func (c *CredentialStore) WriteSession(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCurrentUser, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// ClearSession removes the current session record.
func (c *CredentialStore) ClearSession(ctx context.Context) error {
	if err := c.store.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
