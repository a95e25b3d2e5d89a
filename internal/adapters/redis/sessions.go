package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"booking_front/internal/domain"
)

const sessionPrefix = "session:"

// SessionRepo stores sessions as JSON with a TTL.
type SessionRepo struct{ c redis.UniversalClient }

func NewSessionRepo(c redis.UniversalClient) *SessionRepo { return &SessionRepo{c: c} }

func (r *SessionRepo) Save(ctx context.Context, id string, s domain.Session, ttl time.Duration) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.c.Set(ctx, sessionPrefix+id, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Load(ctx context.Context, id string) (domain.Session, bool, error) {
	b, err := r.c.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("redis get session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		// a corrupt record is treated as no session
		return domain.Session{}, false, nil
	}
	// never hand out half a triple
	if s.Token == "" || s.UserID == "" {
		return domain.Session{}, false, nil
	}
	return s, true, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	return r.c.Del(ctx, sessionPrefix+id).Err()
}
