package auth

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkehler/worldscope/pkg/errors"
	"github.com/mkehler/worldscope/pkg/observability"
)

// EventType identifies a session change notification.
type EventType int

const (
	// EventLoggedIn is broadcast after a successful login or registration.
	EventLoggedIn EventType = iota
	// EventLoggedOut is broadcast after logout.
	EventLoggedOut
)

// Event is delivered to subscribers on session changes. Session is the new
// session for EventLoggedIn and nil for EventLoggedOut.
type Event struct {
	Type    EventType
	Session *Session
}

// Manager is the session state machine: Anonymous when no session record is
// persisted, Authenticated when one is. The persisted record is the source
// of truth; CurrentUser re-reads it so independent consumers observe a
// consistent value without sharing mutable state.
//
// Session changes are delivered through an explicit subscription interface
// rather than ambient events, so the coupling between the manager and its
// observers (the favorites store, the UI) is visible at construction time.
type Manager struct {
	creds  *CredentialStore
	logger *log.Logger

	mu      sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// NewManager creates a session manager over the given credential store.
// Pass nil for logger to use the default logger.
func NewManager(creds *CredentialStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		creds:  creds,
		logger: logger,
		subs:   make(map[int]func(Event)),
	}
}

// Subscribe registers fn for session change events and returns a cancel
// function. Events are delivered synchronously on the goroutine performing
// the session change.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify(event Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Login authenticates against the local registry with an exact,
// case-sensitive email and password match. On success the session (password
// stripped) is persisted, subscribers are notified, and the session is
// returned. On no match the state is unchanged and an INVALID_CREDENTIALS
// error is returned for inline display.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	for _, user := range m.creds.ListUsers(ctx) {
		if user.Email == email && user.Password == password {
			sess := &Session{ID: user.ID, Name: user.Name, Email: user.Email}
			if err := m.creds.WriteSession(ctx, sess); err != nil {
				return nil, errors.Wrap(errors.ErrCodeStorage, err, "could not save session")
			}
			m.logger.Debug("user logged in", "email", email)
			observability.Auth().OnLogin(ctx, sess.ID)
			m.notify(Event{Type: EventLoggedIn, Session: sess})
			return sess, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidCredentials, "Invalid credentials")
}

// Register creates a new user and immediately logs them in. Fails with a
// USER_EXISTS error when the email is already registered (case-sensitive
// match, like login). The new user gets a process-unique UUID.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := errors.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := errors.ValidatePassword(password); err != nil {
		return nil, err
	}

	users := m.creds.ListUsers(ctx)
	for _, user := range users {
		if user.Email == email {
			return nil, errors.New(errors.ErrCodeUserExists, "User already exists")
		}
	}

	newUser := User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := m.creds.SaveUsers(ctx, append(users, newUser)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "could not save registry")
	}

	sess := &Session{ID: newUser.ID, Name: newUser.Name, Email: newUser.Email}
	if err := m.creds.WriteSession(ctx, sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "could not save session")
	}

	m.logger.Debug("user registered", "email", email)
	observability.Auth().OnRegister(ctx, sess.ID)
	m.notify(Event{Type: EventLoggedIn, Session: sess})
	return sess, nil
}

// Logout clears the persisted session and notifies subscribers. Logging out
// while anonymous is a no-op (subscribers are still notified so dependent
// state resets).
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.creds.ClearSession(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "could not clear session")
	}
	m.logger.Debug("user logged out")
	observability.Auth().OnLogout(ctx)
	m.notify(Event{Type: EventLoggedOut})
	return nil
}

// CurrentUser returns the persisted session, or nil when anonymous.
func (m *Manager) CurrentUser(ctx context.Context) *Session {
	return m.creds.ReadSession(ctx)
}

// IsAuthenticated reports whether a session is present.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.CurrentUser(ctx) != nil
}
