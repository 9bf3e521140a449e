package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/session"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	// tokens carry a real exp claim, so the fake clock starts at wall time
	return &fakeClock{now: time.Now().UTC()}
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

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *memSessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memSessionStore) LoadAll(_ context.Context) ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Session
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out, nil
}

type stubAuthRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	user.ID = "u-" + user.Username
	r.users[user.Username] = user
	return user, nil
}

func (r *stubAuthRepo) seed(t *testing.T, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[username] = &domain.User{
		ID:           "u-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *stubAuthRepo, *fakeClock) {
	t.Helper()
	repo := newStubAuthRepo()
	clock := newFakeClock()
	sessions := session.NewManager(newMemSessionStore(), zerolog.Nop(), session.WithClock(clock.Now))
	svc := NewAuthService(repo, sessions, "test-secret", time.Hour)
	return svc, repo, clock
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.seed(t, "asha", "s3cret", domain.RoleCounsellor)

	token, user, err := svc.Login(context.Background(), "asha", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "asha" {
		t.Fatalf("expected logged-in user asha, got %q", user.Username)
	}

	identity, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Username != "asha" || identity.Role != domain.RoleCounsellor {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.seed(t, "asha", "s3cret", domain.RoleCounsellor)

	if _, _, err := svc.Login(context.Background(), "asha", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_VerifyAfterSessionExpiry(t *testing.T) {
	svc, repo, clock := newTestAuthService(t)
	repo.seed(t, "asha", "s3cret", domain.RoleCounsellor)

	token, _, err := svc.Login(context.Background(), "asha", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// the session manager, not the token, is the expiry authority
	clock.Advance(time.Hour + time.Minute)
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}
}

func TestAuthService_VerifyGarbageToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Verify("not-a-jwt"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LogoutInvalidatesToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.seed(t, "asha", "s3cret", domain.RoleCounsellor)

	token, _, err := svc.Login(context.Background(), "asha", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.Logout(context.Background(), token)
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired after logout, got %v", err)
	}

	// logging out again is harmless
	svc.Logout(context.Background(), token)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "", "pw", "", domain.RoleAdmin, ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "ravi", "pw", "", "superuser", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "ravi", "pw", "ravi@example.com", domain.RoleAdmin, "Pune"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "ravi", "pw", "ravi@example.com", domain.RoleAdmin, "Pune"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "ravi", "pw", "", domain.RoleCounsellor, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Fatalf("expected password hashed, got %q", user.PasswordHash)
	}

	stored, _ := repo.FindByUsername(context.Background(), "ravi")
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")) != nil {
		t.Fatalf("stored hash does not match original password")
	}
}
