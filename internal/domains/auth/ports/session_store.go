package ports

import (
	"context"
	"errors"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session persistence. Get returns ErrSessionNotFound for
// unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionLister is implemented by stores that can enumerate the sessions they hold.
type SessionLister interface {
	SessionIDs(ctx context.Context) ([]string, error)
}
