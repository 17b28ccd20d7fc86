package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontend_go/internal/domain"
)

type stubFetcher struct {
	profile *domain.Profile
	err     error
	calls   int
}

func (f *stubFetcher) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newTestManager(t *testing.T, fetcher *stubFetcher) (*Manager, *TokenStore) {
	t.Helper()
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "token"), "test-secret")
	require.NoError(t, err)
	return NewManager(store, fetcher), store
}

func TestStartWithoutStoredToken(t *testing.T) {
	fetcher := &stubFetcher{}
	m, _ := newTestManager(t, fetcher)

	assert.Equal(t, StateUnresolved, m.Snapshot().State)

	m.Start(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.Profile)
	assert.False(t, snap.IsAuthenticated)
	assert.Zero(t, fetcher.calls, "no resolution without a token")
}

func TestStartResolvesStoredToken(t *testing.T) {
	fetcher := &stubFetcher{profile: &domain.Profile{ID: 1, Username: "alice", Role: domain.RoleStudent}}
	m, store := newTestManager(t, fetcher)
	require.NoError(t, store.Save("stored-token"))

	m.Start(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "stored-token", snap.Token)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "alice", snap.Profile.Username)
	assert.True(t, snap.IsAuthenticated)
}

func TestStartClearsTokenOnFailedResolution(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("invalid token")}
	m, store := newTestManager(t, fetcher)
	require.NoError(t, store.Save("rejected-token"))

	m.Start(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.Profile)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted, "rejected token must be cleared from the store")
}

func TestStartSkipsResolutionForExpiredJWT(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	fetcher := &stubFetcher{profile: &domain.Profile{ID: 1}}
	m, store := newTestManager(t, fetcher)
	require.NoError(t, store.Save(expired))

	m.Start(context.Background())

	assert.Equal(t, StateAnonymous, m.Snapshot().State)
	assert.Zero(t, fetcher.calls, "a locally expired token must not be resolved")

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestOpaqueTokenIsStillResolved(t *testing.T) {
	// Tokens that are not JWTs cannot be judged locally; the backend decides.
	fetcher := &stubFetcher{profile: &domain.Profile{ID: 2, Username: "bob"}}
	m, store := newTestManager(t, fetcher)
	require.NoError(t, store.Save("not-a-jwt"))

	m.Start(context.Background())

	assert.Equal(t, StateAuthenticated, m.Snapshot().State)
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoginPersistsAndResolves(t *testing.T) {
	fetcher := &stubFetcher{profile: &domain.Profile{ID: 1, Username: "alice", Role: domain.RoleStudent}}
	m, store := newTestManager(t, fetcher)

	require.NoError(t, m.Login(context.Background(), "fresh-token"))

	snap := m.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsAdmin)
	assert.False(t, snap.IsGuard)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", persisted)
}

func TestLoginFailedResolutionStaysAnonymous(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	m, store := newTestManager(t, fetcher)

	err := m.Login(context.Background(), "bad-token")
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.Snapshot().State)
	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted)
}

func TestLogoutFromAnyState(t *testing.T) {
	t.Run("from authenticated", func(t *testing.T) {
		fetcher := &stubFetcher{profile: &domain.Profile{ID: 1}}
		m, store := newTestManager(t, fetcher)
		require.NoError(t, m.Login(context.Background(), "tok"))

		m.Logout()

		snap := m.Snapshot()
		assert.Equal(t, StateAnonymous, snap.State)
		assert.Empty(t, snap.Token)
		assert.Nil(t, snap.Profile)
		persisted, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("from unresolved", func(t *testing.T) {
		m, _ := newTestManager(t, &stubFetcher{})
		m.Logout()
		assert.Equal(t, StateAnonymous, m.Snapshot().State)
	})

	t.Run("from anonymous", func(t *testing.T) {
		m, _ := newTestManager(t, &stubFetcher{})
		m.Start(context.Background())
		m.Logout()
		assert.Equal(t, StateAnonymous, m.Snapshot().State)
	})
}

func TestDerivedFlagsPerRole(t *testing.T) {
	tests := []struct {
		role      string
		wantAdmin bool
		wantGuard bool
	}{
		{domain.RoleStudent, false, false},
		{domain.RoleGuard, false, true},
		{domain.RoleAdmin, true, false},
		{"superadmin", false, false},
		{"Admin", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run("role "+tt.role, func(t *testing.T) {
			fetcher := &stubFetcher{profile: &domain.Profile{ID: 1, Role: tt.role}}
			m, _ := newTestManager(t, fetcher)
			require.NoError(t, m.Login(context.Background(), "tok"))

			snap := m.Snapshot()
			assert.True(t, snap.IsAuthenticated)
			assert.Equal(t, tt.wantAdmin, snap.IsAdmin)
			assert.Equal(t, tt.wantGuard, snap.IsGuard)
		})
	}
}

func TestFlagsFalseWhenAnonymous(t *testing.T) {
	m, _ := newTestManager(t, &stubFetcher{})
	m.Start(context.Background())

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsAdmin)
	assert.False(t, snap.IsGuard)
}

func TestRefreshReplacesProfileFromServer(t *testing.T) {
	fetcher := &stubFetcher{profile: &domain.Profile{ID: 1, FirstName: "Alice"}}
	m, _ := newTestManager(t, fetcher)
	require.NoError(t, m.Login(context.Background(), "tok"))

	fetcher.profile = &domain.Profile{ID: 1, FirstName: "Alicia"}
	m.Refresh(context.Background())

	require.NotNil(t, m.Snapshot().Profile)
	assert.Equal(t, "Alicia", m.Snapshot().Profile.FirstName)
}
