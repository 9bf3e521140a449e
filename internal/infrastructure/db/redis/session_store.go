package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

// SessionStore persists sessions to Redis as two keys per token: the
// serialized identity and the expiry timestamp in epoch millis. Keys carry a
// Redis TTL matching the session expiry, so abandoned entries age out on
// their own. Writes overwrite unconditionally; concurrent writers are not
// coordinated (last writer wins).
//
// Key format: session:<token>:identity / session:<token>:expires_at
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.identityKey(sess.Token), payload, ttl)
	pipe.Set(ctx, s.expiryKey(sess.Token), strconv.FormatInt(sess.ExpiresAt.UnixMilli(), 10), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.identityKey(token), s.expiryKey(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadAll scans for stored sessions. A corrupt identity payload or missing
// expiry key is treated as "no session" for that token and skipped.
func (s *SessionStore) LoadAll(ctx context.Context) ([]*domain.Session, error) {
	var sessions []*domain.Session

	iter := s.client.Scan(ctx, 0, "session:*:identity", 0).Iterator()
	for iter.Next(ctx) {
		token := tokenFromKey(iter.Val())
		if token == "" {
			continue
		}
		sess, ok := s.load(ctx, token)
		if ok {
			sessions = append(sessions, sess)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return sessions, nil
}

func (s *SessionStore) load(ctx context.Context, token string) (*domain.Session, bool) {
	raw, err := s.client.Get(ctx, s.identityKey(token)).Result()
	if err != nil {
		return nil, false
	}
	var identity domain.User
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, false
	}

	millis, err := s.client.Get(ctx, s.expiryKey(token)).Result()
	if err != nil {
		return nil, false
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return nil, false
	}

	return &domain.Session{
		Token:     token,
		Identity:  &identity,
		ExpiresAt: time.UnixMilli(ms).UTC(),
	}, true
}

func (s *SessionStore) identityKey(token string) string {
	return fmt.Sprintf("session:%s:identity", token)
}

func (s *SessionStore) expiryKey(token string) string {
	return fmt.Sprintf("session:%s:expires_at", token)
}

func tokenFromKey(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}
