package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/session"
)

// AuthService implements registration and the session-backed login flow.
// Tokens are HS256 JWTs whose "sid" claim points at the server-side session;
// a token is only as valid as the session behind it, so expiry detected by
// the session manager invalidates an otherwise well-formed token.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  *session.Manager
	jwtSecret string
	ttl       time.Duration
}

func NewAuthService(repo ports.AuthRepository, sessions *session.Manager, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, ttl: ttl}
}

func (s *AuthService) Register(ctx context.Context, username, password, email, role, centre string) (*domain.User, error) {
	if username == "" || password == "" || !domain.IsKnownRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         role,
		Centre:       centre,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sess := s.sessions.Login(ctx, user, s.ttl)

	token, err := s.signToken(sess)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	sid, err := s.sessionID(token)
	if err != nil {
		// an unparseable token has no session to tear down
		return
	}
	s.sessions.Logout(ctx, sid)
}

// Verify resolves a signed token to its identity. The session manager is the
// authority on expiry: a structurally valid token whose session is gone
// yields ErrAuthExpired.
func (s *AuthService) Verify(token string) (*domain.User, error) {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil, err
	}
	identity := s.sessions.Identity(sid)
	if identity == nil {
		return nil, domain.ErrAuthExpired
	}
	return identity, nil
}

func (s *AuthService) signToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sess.Token,
		"username": sess.Identity.Username,
		"role":     sess.Identity.Role,
		"exp":      sess.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) sessionID(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrAuthExpired
		}
		return "", domain.ErrInvalidCredentials
	}
	if !tkn.Valid {
		return "", domain.ErrInvalidCredentials
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrInvalidCredentials
	}
	return sid, nil
}
