package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkehler/worldscope/pkg/errors"
	"github.com/mkehler/worldscope/pkg/storage"
)

func newTestManager(t *testing.T) (*Manager, *CredentialStore) {
	t.Helper()
	creds := NewCredentialStore(storage.NewMemoryStore(), nil)
	return NewManager(creds, nil), creds
}

func TestManager_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	sess, err := m.Register(ctx, "Ada", "a@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "Ada", sess.Name)
	assert.Equal(t, "a@x.com", sess.Email)

	// Auto-login invariant: the new session is immediately current.
	current := m.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, sess, current)
	assert.True(t, m.IsAuthenticated(ctx))

	// Login resolves with the registered user minus the password.
	require.NoError(t, m.Logout(ctx))
	got, err := m.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestManager_LoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Register(ctx, "Ada", "a@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.com", "wrong"},
		{"unknown email", "b@x.com", "pw"},
		{"case-sensitive email", "A@x.com", "pw"},
		{"case-sensitive password", "a@x.com", "PW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Login(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidCredentials))
			assert.Equal(t, "Invalid credentials", errors.UserMessage(err))

			// Persisted session unchanged: still anonymous.
			assert.Nil(t, m.CurrentUser(ctx))
		})
	}
}

func TestManager_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m, creds := newTestManager(t)

	_, err := m.Register(ctx, "Ada", "a@x.com", "pw")
	require.NoError(t, err)

	_, err = m.Register(ctx, "Imposter", "a@x.com", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUserExists))
	assert.Equal(t, "User already exists", errors.UserMessage(err))

	// Registry unchanged: no duplicate entry appended.
	users := creds.ListUsers(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestManager_RegisterValidatesInput(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Register(ctx, "Ada", "not-an-email", "pw")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = m.Register(ctx, "Ada", "a@x.com", "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestManager_SessionNeverContainsPassword(t *testing.T) {
	ctx := context.Background()
	m, creds := newTestManager(t)

	sess, err := m.Register(ctx, "Ada", "a@x.com", "secret")
	require.NoError(t, err)

	// The persisted registry keeps the password, the session does not.
	users := creds.ListUsers(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, "secret", users[0].Password)
	assert.Equal(t, users[0].ID, sess.ID)

	stored := creds.ReadSession(ctx)
	require.NotNil(t, stored)
	assert.Equal(t, &Session{ID: users[0].ID, Name: "Ada", Email: "a@x.com"}, stored)
}

func TestManager_SubscribeReceivesEvents(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	var events []Event
	cancel := m.Subscribe(func(e Event) { events = append(events, e) })

	sess, err := m.Register(ctx, "Ada", "a@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	require.Len(t, events, 2)
	assert.Equal(t, EventLoggedIn, events[0].Type)
	assert.Equal(t, sess, events[0].Session)
	assert.Equal(t, EventLoggedOut, events[1].Type)
	assert.Nil(t, events[1].Session)

	// After cancel, no further deliveries.
	cancel()
	_, err = m.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestManager_LogoutWhileAnonymous(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	notified := 0
	m.Subscribe(func(e Event) { notified++ })

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, 1, notified)
	assert.False(t, m.IsAuthenticated(ctx))
}
