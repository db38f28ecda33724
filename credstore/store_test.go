package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoltStore(t *testing.T) *Bolt {
	t.Helper()
	s, err := NewBoltFromFile(filepath.Join(t.TempDir(), "cred.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCredentialRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemory(),
		"bolt":   newBoltStore(t),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Token()
			assert.False(t, ok, "fresh store must have no token")

			require.NoError(t, s.SetSession("tok-abc123", "USER", "mina"))

			tok, ok := s.Token()
			require.True(t, ok)
			assert.Equal(t, "tok-abc123", tok)
			role, ok := s.Role()
			require.True(t, ok)
			assert.Equal(t, "USER", role)
			nick, ok := s.Nickname()
			require.True(t, ok)
			assert.Equal(t, "mina", nick)

			require.NoError(t, s.Clear())
			_, ok = s.Token()
			assert.False(t, ok, "token must be absent after Clear")
			_, ok = s.Role()
			assert.False(t, ok, "role must be absent after Clear")
			_, ok = s.Nickname()
			assert.False(t, ok, "nickname must be absent after Clear")

			// Clearing an already-empty store is a no-op.
			require.NoError(t, s.Clear())
		})
	}
}

func TestPartialUpdates(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemory(),
		"bolt":   newBoltStore(t),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SetSession("tok", "USER", "old"))
			require.NoError(t, s.SetRole("ADMIN"))
			require.NoError(t, s.SetNickname("new"))

			role, _ := s.Role()
			assert.Equal(t, "ADMIN", role)
			nick, _ := s.Nickname()
			assert.Equal(t, "new", nick)
			tok, ok := s.Token()
			require.True(t, ok, "token must survive partial updates")
			assert.Equal(t, "tok", tok)
		})
	}
}

func TestBoltSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cred.db")

	s, err := NewBoltFromFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetSession("persisted-token", "ROLE_ADMIN", "jiho"))
	require.NoError(t, s.Close())

	s, err = NewBoltFromFile(path, nil)
	require.NoError(t, err)
	defer s.Close()

	tok, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "persisted-token", tok)
	role, _ := s.Role()
	assert.Equal(t, "ROLE_ADMIN", role)
}

func TestIsAdminRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"ADMIN", true},
		{"ROLE_ADMIN", true},
		{"USER", false},
		{"ROLE_USER", false},
		{"admin", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAdminRole(tt.role), "role %q", tt.role)
	}
}
