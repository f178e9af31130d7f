package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumerqa/chatkit/schema"
)

func TestFileStoreSurvivesRestart(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "session.json")

	sessions, err := NewFileStore(URL)
	require.NoError(t, err)
	_, active := sessions.Lookup()
	assert.False(t, active)

	session := Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Identity:     &schema.Identity{UserID: "user-1", Email: "user@example.com", Username: "user"},
	}
	require.NoError(t, sessions.Set(session))

	// a new store over the same file sees the previous login
	restarted, err := NewFileStore(URL)
	require.NoError(t, err)
	got, active := restarted.Lookup()
	assert.True(t, active)
	assert.Equal(t, session, got)
}

func TestFileStoreClearErasesFile(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "session.json")

	sessions, err := NewFileStore(URL)
	require.NoError(t, err)
	require.NoError(t, sessions.Set(Session{AccessToken: "access", RefreshToken: "refresh"}))
	_, err = os.Stat(URL)
	require.NoError(t, err)

	require.NoError(t, sessions.Clear())
	_, err = os.Stat(URL)
	assert.True(t, os.IsNotExist(err))

	restarted, err := NewFileStore(URL)
	require.NoError(t, err)
	_, active := restarted.Lookup()
	assert.False(t, active)
}

func TestFileStoreRejectsCorruptedFile(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(URL, []byte("not json"), 0o600))

	_, err := NewFileStore(URL)
	require.Error(t, err)
}
