package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkehler/worldscope/pkg/storage"
)

func TestCredentialStore_ListUsers_Defensive(t *testing.T) {
	tests := []struct {
		name   string
		stored string // empty means no key
	}{
		{"absent key", ""},
		{"malformed json", `{not json`},
		{"wrong shape", `{"id":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryStore()
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, storage.KeyUsers, []byte(tt.stored)))
			}

			creds := NewCredentialStore(store, nil)
			users := creds.ListUsers(ctx)
			assert.NotNil(t, users)
			assert.Empty(t, users)
		})
	}
}

func TestCredentialStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	creds := NewCredentialStore(storage.NewMemoryStore(), nil)

	in := []User{
		{ID: "1", Name: "Ada", Email: "ada@x.com", Password: "pw"},
		{ID: "2", Name: "Bela", Email: "bela@x.com", Password: "pw2"},
	}
	require.NoError(t, creds.SaveUsers(ctx, in))

	out := creds.ListUsers(ctx)
	assert.Equal(t, in, out)
}

func TestCredentialStore_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	creds := NewCredentialStore(storage.NewMemoryStore(), nil)

	assert.Nil(t, creds.ReadSession(ctx), "no session on a fresh store")

	sess := &Session{ID: "1", Name: "Ada", Email: "ada@x.com"}
	require.NoError(t, creds.WriteSession(ctx, sess))
	assert.Equal(t, sess, creds.ReadSession(ctx))

	require.NoError(t, creds.ClearSession(ctx))
	assert.Nil(t, creds.ReadSession(ctx))
}

func TestCredentialStore_CorruptSessionIsAnonymous(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, []byte(`}{`)))

	creds := NewCredentialStore(store, nil)
	assert.Nil(t, creds.ReadSession(ctx))
}
