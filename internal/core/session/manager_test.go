package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	failing  bool
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return domain.ErrStorageUnavailable
	}
	s.sessions[sess.Token] = sess
	return nil
}

func (s *stubStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return domain.ErrStorageUnavailable
	}
	delete(s.sessions, token)
	return nil
}

func (s *stubStore) LoadAll(_ context.Context) ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, domain.ErrStorageUnavailable
	}
	var out []*domain.Session
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out, nil
}

func (s *stubStore) contains(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", Username: "asha", Role: domain.RoleCounsellor}
}

func newTestManager(t *testing.T) (*Manager, *stubStore, *fakeClock) {
	t.Helper()
	store := newStubStore()
	clock := newFakeClock()
	m := NewManager(store, zerolog.Nop(), WithClock(clock.Now))
	return m, store, clock
}

func TestManager_IdentityPresentBeforeExpiry(t *testing.T) {
	m, _, clock := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), time.Hour)
	clock.Advance(time.Hour - time.Millisecond)

	identity := m.Identity(sess.Token)
	if identity == nil || identity.Username != "asha" {
		t.Fatalf("expected identity before expiry, got %+v", identity)
	}
}

func TestManager_IdentityAbsentAfterExpiry(t *testing.T) {
	m, _, clock := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), time.Hour)
	clock.Advance(time.Hour + time.Millisecond)
	m.Sweep(context.Background())

	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected nil identity after expiry, got %+v", identity)
	}
}

func TestManager_ExpiredSessionAbsentEvenBeforeSweep(t *testing.T) {
	m, _, clock := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), time.Hour)
	clock.Advance(time.Hour + time.Millisecond)

	// the invariant holds regardless of whether the background check ran
	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected nil identity past expiry, got %+v", identity)
	}
}

func TestManager_ExpiryLifecycle(t *testing.T) {
	m, store, clock := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), 1000*time.Millisecond)

	clock.Advance(500 * time.Millisecond)
	if identity := m.Identity(sess.Token); identity == nil {
		t.Fatalf("expected identity at t=500ms")
	}

	clock.Advance(1000 * time.Millisecond)
	expired := m.Sweep(context.Background())
	if expired != 1 {
		t.Fatalf("expected 1 expired session, got %d", expired)
	}
	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected nil identity at t=1500ms, got %+v", identity)
	}
	if store.contains(sess.Token) {
		t.Fatalf("expected storage keys cleared after expiry")
	}
}

func TestManager_LogoutIdempotent(t *testing.T) {
	m, _, _ := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), time.Hour)

	m.Logout(context.Background(), sess.Token)
	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected nil identity after logout, got %+v", identity)
	}

	// a second logout is a no-op, never an error
	m.Logout(context.Background(), sess.Token)
	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected nil identity after second logout, got %+v", identity)
	}
}

func TestManager_DefaultTTLApplied(t *testing.T) {
	m, _, clock := newTestManager(t)

	sess := m.Login(context.Background(), testUser(), 0)
	if got := sess.ExpiresAt.Sub(sess.IssuedAt); got != DefaultTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTTL, got)
	}

	clock.Advance(DefaultTTL - time.Second)
	if m.Identity(sess.Token) == nil {
		t.Fatalf("expected identity inside default TTL")
	}
}

func TestManager_StorageFailureIsNotFatal(t *testing.T) {
	store := newStubStore()
	store.failing = true
	clock := newFakeClock()
	m := NewManager(store, zerolog.Nop(), WithClock(clock.Now))

	// the session must still work in memory when the store is down
	sess := m.Login(context.Background(), testUser(), time.Hour)
	if identity := m.Identity(sess.Token); identity == nil {
		t.Fatalf("expected in-memory session despite storage failure")
	}

	m.Logout(context.Background(), sess.Token)
	if identity := m.Identity(sess.Token); identity != nil {
		t.Fatalf("expected logout to clear memory despite storage failure")
	}
}

func TestManager_RehydrateDropsExpiredSessions(t *testing.T) {
	store := newStubStore()
	clock := newFakeClock()

	live := &domain.Session{
		Token:     "live",
		Identity:  testUser(),
		IssuedAt:  clock.Now(),
		ExpiresAt: clock.Now().Add(time.Hour),
	}
	stale := &domain.Session{
		Token:     "stale",
		Identity:  testUser(),
		IssuedAt:  clock.Now().Add(-2 * time.Hour),
		ExpiresAt: clock.Now().Add(-time.Hour),
	}
	corrupt := &domain.Session{
		Token:     "corrupt",
		ExpiresAt: clock.Now().Add(time.Hour),
	}
	_ = store.Save(context.Background(), live)
	_ = store.Save(context.Background(), stale)
	_ = store.Save(context.Background(), corrupt)

	m := NewManager(store, zerolog.Nop(), WithClock(clock.Now))
	m.Rehydrate(context.Background())

	if m.Identity("live") == nil {
		t.Fatalf("expected live session rehydrated")
	}
	if m.Identity("stale") != nil {
		t.Fatalf("expected stale session dropped")
	}
	if m.Identity("corrupt") != nil {
		t.Fatalf("expected corrupt session treated as no session")
	}
	if store.contains("stale") {
		t.Fatalf("expected stale session cleared from storage")
	}
}

func TestManager_RehydrateSurvivesStoreFailure(t *testing.T) {
	store := newStubStore()
	store.failing = true
	m := NewManager(store, zerolog.Nop())

	// must not panic or error; the manager just starts empty
	m.Rehydrate(context.Background())

	if identity := m.Identity("anything"); identity != nil {
		t.Fatalf("expected empty manager, got %+v", identity)
	}
}

func TestManager_ErrStorageUnavailableIsSentinel(t *testing.T) {
	store := newStubStore()
	store.failing = true
	if err := store.Save(context.Background(), &domain.Session{Token: "x"}); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
