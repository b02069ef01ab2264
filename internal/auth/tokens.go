package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionUnknown indicates a refresh token that is not (or no
// longer) registered: revoked, rotated away or expired.
var ErrSessionUnknown = errors.New("auth: unknown refresh session")

// RefreshStore keeps live refresh sessions in Redis. Expiry is enforced
// by key TTL; consuming a token removes it, which makes every refresh
// token single-use.
type RefreshStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshStore constructs a store with the given session TTL.
func NewRefreshStore(client *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{client: client, ttl: ttl}
}

// Save registers a refresh session for the user.
func (s *RefreshStore) Save(ctx context.Context, id string, userID int64) error {
	return s.client.Set(ctx, s.key(id), strconv.FormatInt(userID, 10), s.ttl).Err()
}

// Take consumes a refresh session and returns the user it belongs to.
// The session is gone afterwards; rotation issues a fresh one.
func (s *RefreshStore) Take(ctx context.Context, id string) (int64, error) {
	raw, err := s.client.GetDel(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionUnknown
		}
		return 0, err
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrSessionUnknown
	}
	return userID, nil
}

// Revoke drops a refresh session, if present.
func (s *RefreshStore) Revoke(ctx context.Context, id string) error {
	err := s.client.Del(ctx, s.key(id)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (s *RefreshStore) key(id string) string {
	return "refresh:" + id
}
