// Package session tracks authenticated logins and enforces a fixed-duration
// expiry. The manager owns the Session records: it keeps the authoritative
// copy in memory, mirrors it to a durable store, and sweeps expired sessions
// on a timer. Durable-store failures degrade to in-memory-only sessions and
// are never fatal.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/api/metrics"
	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

const (
	// DefaultTTL is the fixed session duration when the caller passes none.
	DefaultTTL = time.Hour
	// sweepInterval is how often the background check looks for expired
	// sessions.
	sweepInterval = time.Minute
)

// Manager holds the in-memory session table. Safe for concurrent use.
type Manager struct {
	store ports.SessionStore
	clock func() time.Time
	log   zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock injects the time source. Tests use this to advance time.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// NewManager creates a Manager backed by store.
func NewManager(store ports.SessionStore, log zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		clock:    time.Now,
		log:      log,
		sessions: make(map[string]*domain.Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rehydrate loads stored sessions at startup. Sessions whose expiry has
// already passed are cleared from storage; live ones enter the in-memory
// table. A store read failure is logged and rehydration is skipped.
func (m *Manager) Rehydrate(ctx context.Context) {
	stored, err := m.store.LoadAll(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session store unavailable, starting with no sessions")
		return
	}
	now := m.clock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range stored {
		if s.Identity == nil || s.Expired(now) {
			if err := m.store.Delete(ctx, s.Token); err != nil {
				m.log.Warn().Err(err).Str("token", s.Token).Msg("failed to clear stale session")
			}
			continue
		}
		m.sessions[s.Token] = s
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.log.Info().Int("sessions", len(m.sessions)).Msg("sessions rehydrated")
}

// Login creates a session for identity expiring after ttl (DefaultTTL when
// ttl <= 0). The session is written to durable storage; a write failure is
// reported as a warning only, so the session simply won't survive a restart.
func (m *Manager) Login(ctx context.Context, identity *domain.User, ttl time.Duration) *domain.Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := m.clock()
	s := &domain.Session{
		Token:     newToken(),
		Identity:  identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	if err := m.store.Save(ctx, s); err != nil {
		m.log.Warn().Err(err).Str("username", identity.Username).Msg("session not persisted, will not survive restart")
	}
	metrics.LoginsTotal.WithLabelValues(identity.Role).Inc()
	return s
}

// Logout removes the session from memory and storage unconditionally.
// Idempotent: logging out an absent token is a no-op.
func (m *Manager) Logout(ctx context.Context, token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	if err := m.store.Delete(ctx, token); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}
}

// Identity returns the identity behind token, or nil when the token is
// unknown or the session has expired. Expiry is checked against the injected
// clock, so a lapsed session is absent even before the sweeper runs.
func (m *Manager) Identity(token string) *domain.User {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || s.Expired(m.clock()) {
		return nil
	}
	return s.Identity
}

// Sweep logs out every expired session and returns how many were removed.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.clock()

	m.mu.RLock()
	var expired []string
	for token, s := range m.sessions {
		if s.Expired(now) {
			expired = append(expired, token)
		}
	}
	m.mu.RUnlock()

	for _, token := range expired {
		m.Logout(ctx, token)
		metrics.SessionsExpiredTotal.Inc()
	}
	if len(expired) > 0 {
		m.log.Info().Int("expired", len(expired)).Msg("expired sessions swept")
	}
	return len(expired)
}

// Run performs the background expiry check every minute until ctx is
// cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// newToken returns a 32-char random hex token.
func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the current nanoseconds
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))[:32]
	}
	return hex.EncodeToString(b)
}
