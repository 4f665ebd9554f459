package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/store/domain"
)

// Service exposes the store status control to adapters.
type Service interface {
	Snapshot() domain.Snapshot
	Refresh(ctx context.Context) (domain.Snapshot, error)
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// SwitchRegistry hands out the per-session store switch.
type SwitchRegistry interface {
	For(sessionID string) *domain.Switch
	Forget(sessionID string)
}
