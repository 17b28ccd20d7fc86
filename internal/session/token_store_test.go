package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, secret string) *TokenStore {
	t.Helper()
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "token"), secret)
	require.NoError(t, err)
	return store
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := newTestStore(t, "test-secret")

	require.NoError(t, store.Save("bearer-token-value"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", got)
}

func TestTokenStoreMissingFileMeansNoToken(t *testing.T) {
	store := newTestStore(t, "test-secret")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenStoreClear(t *testing.T) {
	store := newTestStore(t, "test-secret")
	require.NoError(t, store.Save("tok"))

	require.NoError(t, store.Clear())
	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}

func TestTokenStoreTokenNotStoredInPlaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	store, err := NewTokenStore(path, "test-secret")
	require.NoError(t, err)
	require.NoError(t, store.Save("super-secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-token")
}

func TestTokenStoreWrongKeyFailsToOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	store, err := NewTokenStore(path, "key-one")
	require.NoError(t, err)
	require.NoError(t, store.Save("tok"))

	other, err := NewTokenStore(path, "key-two")
	require.NoError(t, err)
	_, err = other.Load()
	assert.Error(t, err)
}

func TestTokenStoreRequiresPathAndSecret(t *testing.T) {
	_, err := NewTokenStore("", "secret")
	assert.Error(t, err)

	_, err = NewTokenStore(filepath.Join(t.TempDir(), "token"), "")
	assert.Error(t, err)
}
