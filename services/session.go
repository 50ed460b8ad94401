package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 12 * time.Hour

// SessionStore tracks live admin sessions in Redis so logout actually
// revokes a token. With no Redis the store is permissive and tokens are
// only bounded by their JWT expiry, matching how the rest of the stack
// treats Redis as optional.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(sessionID string) string {
	return "admin_session:" + sessionID
}

func (ss *SessionStore) Create(ctx context.Context, sessionID string) error {
	if ss.rdb == nil {
		return nil
	}
	return ss.rdb.Set(ctx, sessionKey(sessionID), "1", sessionTTL).Err()
}

// Valid reports whether the session is still live. Without Redis every
// session is considered live.
func (ss *SessionStore) Valid(ctx context.Context, sessionID string) bool {
	if ss.rdb == nil {
		return true
	}
	n, err := ss.rdb.Exists(ctx, sessionKey(sessionID)).Result()
	return err == nil && n > 0
}

func (ss *SessionStore) Revoke(ctx context.Context, sessionID string) {
	if ss.rdb == nil {
		return
	}
	ss.rdb.Del(ctx, sessionKey(sessionID))
}
