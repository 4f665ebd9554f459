package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

// DefaultSessionTTL applies when the backend token carries no usable expiry.
const DefaultSessionTTL = 24 * time.Hour

// Service implements login, registration and the session lifecycle.
type Service struct {
	gateway    ports.Gateway
	sessions   ports.SessionStore
	sessionTTL time.Duration
	now        func() time.Time
	teardown   []func(sessionID string)

	// flashMu serializes the read-modify-write of a session's alert queue.
	flashMu sync.Mutex
}

// Option configures the service.
type Option func(*Service)

// WithSessionTTL overrides the fallback session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock swaps the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTeardown registers a hook run when a session ends, so per-session state
// held elsewhere in the console is released with it.
func WithTeardown(fn func(sessionID string)) Option {
	return func(s *Service) {
		if fn != nil {
			s.teardown = append(s.teardown, fn)
		}
	}
}

func NewService(gateway ports.Gateway, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		gateway:    gateway,
		sessions:   sessions,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login authenticates against the backend and opens a console session.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	session, err := domain.NewSession(token, email, s.now(), s.sessionTTL)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Register forwards the sign-up to the backend untouched.
func (s *Service) Register(ctx context.Context, registration domain.Registration) error {
	if err := s.gateway.Register(ctx, registration); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}
	return nil
}

// Session resolves a live session by id.
func (s *Service) Session(ctx context.Context, id string) (*domain.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNoSession
	}
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if session.Expired(s.now()) {
		_ = s.end(ctx, id)
		return nil, ErrNoSession
	}
	return session, nil
}

// Logout tears the session down.
func (s *Service) Logout(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return s.end(ctx, id)
}

// Flash queues an alert on the session for the next page render.
func (s *Service) Flash(ctx context.Context, id, message string) error {
	s.flashMu.Lock()
	defer s.flashMu.Unlock()
	session, err := s.Session(ctx, id)
	if err != nil {
		return err
	}
	session.AddFlash(message)
	return s.sessions.Save(ctx, session)
}

// TakeFlashes returns and clears queued alerts.
func (s *Service) TakeFlashes(ctx context.Context, id string) ([]string, error) {
	s.flashMu.Lock()
	defer s.flashMu.Unlock()
	session, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	flashes := session.PopFlashes()
	if len(flashes) == 0 {
		return nil, nil
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return flashes, err
	}
	return flashes, nil
}

// Sweep ends every session that is expired or no longer stored. It checks the
// given ids, which callers collect from per-session state they hold, plus every
// id the store can list. It returns how many sessions were ended.
func (s *Service) Sweep(ctx context.Context, ids ...string) int {
	if lister, ok := s.sessions.(ports.SessionLister); ok {
		listed, err := lister.SessionIDs(ctx)
		if err == nil {
			ids = append(ids, listed...)
		}
	}
	now := s.now()
	seen := make(map[string]struct{}, len(ids))
	ended := 0
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		session, err := s.sessions.Get(ctx, id)
		switch {
		case errors.Is(err, ports.ErrSessionNotFound):
		case err != nil:
			continue
		case !session.Expired(now):
			continue
		}
		if s.end(ctx, id) == nil {
			ended++
		}
	}
	return ended
}

func (s *Service) end(ctx context.Context, id string) error {
	for _, fn := range s.teardown {
		fn(id)
	}
	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
