package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	session sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}
	s.session.Store(session.ID, clone(session))
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	value, ok := s.session.Load(id)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return clone(value.(*domain.Session)), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.session.Delete(id)
	return nil
}

func (s *SessionStore) SessionIDs(_ context.Context) ([]string, error) {
	var ids []string
	s.session.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids, nil
}

func clone(session *domain.Session) *domain.Session {
	copy := *session
	copy.Flashes = append([]string(nil), session.Flashes...)
	return &copy
}

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionLister = (*SessionStore)(nil)
)
