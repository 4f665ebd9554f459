package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

// KeySession holds one console session: console:session:{id} -> JSON payload.
const KeySession = "console:session:%s"

// SessionStore keeps sessions in Redis with a TTL matching their expiry.
type SessionStore struct {
	rdb *goredis.Client
	now func() time.Time
}

func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb, now: time.Now}
}

type sessionPayload struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Flashes   []string  `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if s == nil || s.rdb == nil {
		return errors.New("redis session store not configured")
	}
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return errors.New("session id is required")
	}
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return s.Delete(ctx, session.ID)
		}
	}
	raw, err := json.Marshal(sessionPayload{
		ID:        session.ID,
		Token:     session.Token,
		Email:     session.Email,
		Flashes:   session.Flashes,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.rdb.Set(ctx, key(session.ID), raw, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if s == nil || s.rdb == nil {
		return nil, errors.New("redis session store not configured")
	}
	raw, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{
		ID:        payload.ID,
		Token:     payload.Token,
		Email:     payload.Email,
		Flashes:   payload.Flashes,
		CreatedAt: payload.CreatedAt,
		ExpiresAt: payload.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.rdb == nil {
		return errors.New("redis session store not configured")
	}
	return s.rdb.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return fmt.Sprintf(KeySession, strings.TrimSpace(id))
}

var _ ports.SessionStore = (*SessionStore)(nil)
