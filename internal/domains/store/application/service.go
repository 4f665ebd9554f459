package application

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/store/domain"
	"github.com/Apurer/delivery-console/internal/domains/store/ports"
)

// Service drives the store open/closed control for one session.
type Service struct {
	gateway ports.Gateway
	sw      *domain.Switch
}

func NewService(gateway ports.Gateway, sw *domain.Switch) *Service {
	if sw == nil {
		sw = domain.NewSwitch()
	}
	return &Service{gateway: gateway, sw: sw}
}

// Snapshot returns the last confirmed state without calling the backend.
func (s *Service) Snapshot() domain.Snapshot {
	return s.sw.Snapshot()
}

// Refresh fetches the status unconditionally and overwrites the local state.
// On failure the last confirmed state is kept.
func (s *Service) Refresh(ctx context.Context) (domain.Snapshot, error) {
	open, err := s.gateway.Status(ctx)
	if err != nil {
		return s.sw.Snapshot(), wrap(ErrStatusUnavailable, err)
	}
	s.sw.Confirm(domain.StatusFromOpen(open))
	return s.sw.Snapshot(), nil
}

// Open sends the open command unless the store is already confirmed open.
func (s *Service) Open(ctx context.Context) error {
	return s.toggle(ctx, domain.CommandOpen)
}

// Close sends the close command unless the store is already confirmed closed.
func (s *Service) Close(ctx context.Context) error {
	return s.toggle(ctx, domain.CommandClose)
}

func (s *Service) toggle(ctx context.Context, cmd domain.Command) error {
	proceed, err := s.sw.Begin(cmd)
	if err != nil || !proceed {
		return err
	}
	defer s.sw.Finish()

	if cmd == domain.CommandOpen {
		err = wrap(ErrOpenFailed, s.gateway.Open(ctx))
	} else {
		err = wrap(ErrCloseFailed, s.gateway.Close(ctx))
	}
	if err != nil {
		return err
	}
	// a failed re-fetch keeps the previous confirmation; the command itself succeeded
	_, _ = s.Refresh(ctx)
	return nil
}

var _ ports.Service = (*Service)(nil)
