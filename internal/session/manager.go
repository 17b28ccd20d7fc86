package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"frontend_go/internal/domain"
)

// State is the session lifecycle position. Unresolved exists only between
// construction and Start; Resolving only while a profile fetch is in flight.
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ProfileFetcher is the one backend call session resolution needs.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*domain.Profile, error)
}

// Snapshot is an immutable read of the session. The flags are derived on
// every read, never stored.
type Snapshot struct {
	State   State
	Token   string
	Profile *domain.Profile

	IsAuthenticated bool
	IsAdmin         bool
	IsGuard         bool
}

// Manager owns the process-wide session: the bearer token, the resolved
// profile, and the persisted copy of the token. It is the single writer;
// everything else reads snapshots.
type Manager struct {
	mu      sync.RWMutex
	store   *TokenStore
	backend ProfileFetcher

	state   State
	token   string
	profile *domain.Profile
}

func NewManager(store *TokenStore, backend ProfileFetcher) *Manager {
	return &Manager{
		store:   store,
		backend: backend,
		state:   StateUnresolved,
	}
}

// Start performs the initial session resolution: no stored token goes
// straight to anonymous; a stored token is exchanged for a profile, and any
// failure clears it.
func (m *Manager) Start(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil {
		log.Printf("session: stored token unreadable, discarding: %v", err)
		_ = m.store.Clear()
		m.setAnonymous()
		return
	}
	if token == "" {
		m.setAnonymous()
		return
	}
	if tokenExpired(token, time.Now()) {
		log.Printf("session: stored token expired, discarding")
		_ = m.store.Clear()
		m.setAnonymous()
		return
	}

	m.setResolving(token)
	m.resolve(ctx, token)
}

// Login persists the freshly issued token and resolves it. On resolution
// failure the token is cleared again and the session stays anonymous.
func (m *Manager) Login(ctx context.Context, token string) error {
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.setResolving(token)
	m.resolve(ctx, token)

	if m.Snapshot().State != StateAuthenticated {
		return domain.ErrUnauthorized
	}
	return nil
}

// Logout clears the persisted token and the in-memory session, from any state.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		log.Printf("session: clearing token store: %v", err)
	}
	m.setAnonymous()
}

// Refresh re-fetches the profile for the current token, used after a profile
// update so views never render a locally patched copy. A failure collapses
// the session to anonymous, same as failed resolution.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.RLock()
	token := m.token
	authenticated := m.state == StateAuthenticated
	m.mu.RUnlock()

	if !authenticated {
		return
	}
	m.resolve(ctx, token)
}

func (m *Manager) resolve(ctx context.Context, token string) {
	profile, err := m.backend.Profile(ctx, token)
	if err != nil {
		log.Printf("session: resolution failed: %v", err)
		_ = m.store.Clear()
		m.setAnonymous()
		return
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.profile = profile
	m.mu.Unlock()
}

func (m *Manager) setResolving(token string) {
	m.mu.Lock()
	m.state = StateResolving
	m.token = token
	m.profile = nil
	m.mu.Unlock()
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.token = ""
	m.profile = nil
	m.mu.Unlock()
}

// Snapshot returns the current session with its derived flags. Token and
// profile are either both set or both empty once resolution has settled.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		State:   m.state,
		Token:   m.token,
		Profile: m.profile,
	}
	snap.IsAuthenticated = snap.Token != "" && snap.Profile != nil
	snap.IsAdmin = snap.IsAuthenticated && snap.Profile.Role == domain.RoleAdmin
	snap.IsGuard = snap.IsAuthenticated && snap.Profile.Role == domain.RoleGuard
	return snap
}

// tokenExpired reports whether a JWT's exp claim is already past. The claims
// are read without verifying the signature; the backend remains the
// authority, this only skips a resolution round-trip that must fail. Opaque
// non-JWT tokens are never considered locally expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
