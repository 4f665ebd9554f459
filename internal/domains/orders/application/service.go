package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
	"github.com/Apurer/delivery-console/internal/domains/orders/ports"
)

// Service runs the order workflow for one console session. Every accepted
// action re-fetches the board so the operator always sees backend truth.
type Service struct {
	gateway   ports.Gateway
	boards    ports.BoardCache
	sessionID string
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock swaps the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(gateway ports.Gateway, boards ports.BoardCache, sessionID string, opts ...Option) *Service {
	s := &Service{
		gateway:   gateway,
		boards:    boards,
		sessionID: sessionID,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load fetches orders and delivery staff. A failed fetch still installs a
// board, empty for the part that failed, and reports the failure.
func (s *Service) Load(ctx context.Context) (*domain.Board, error) {
	var errs []error
	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		orders = nil
		errs = append(errs, wrap(ErrListUnavailable, err))
	}
	persons, err := s.gateway.ListDeliveryPersons(ctx)
	if err != nil {
		persons = nil
		errs = append(errs, fmt.Errorf("delivery persons unavailable: %w", err))
	}
	board := domain.NewBoard(orders, persons, s.now())
	s.boards.Put(s.sessionID, board)
	return board, errors.Join(errs...)
}

func (s *Service) Board(ctx context.Context) (*domain.Board, error) {
	if board, ok := s.boards.Get(s.sessionID); ok {
		return board, nil
	}
	return s.Load(ctx)
}

func (s *Service) Accept(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionAccept, func(ctx context.Context, _ domain.Order, to domain.Status) error {
		return wrap(ErrUpdateFailed, s.gateway.UpdateStatus(ctx, id, to))
	})
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionCancel, func(ctx context.Context, _ domain.Order, to domain.Status) error {
		return wrap(ErrUpdateFailed, s.gateway.UpdateStatus(ctx, id, to))
	})
}

func (s *Service) Deliver(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionDeliver, func(ctx context.Context, _ domain.Order, to domain.Status) error {
		return wrap(ErrUpdateFailed, s.gateway.UpdateStatus(ctx, id, to))
	})
}

// Assign hands an accepted order to the selected delivery person. An empty
// selection is rejected before anything is sent.
func (s *Service) Assign(ctx context.Context, id int64, deliveryPersonID string) error {
	deliveryPersonID = strings.TrimSpace(deliveryPersonID)
	if deliveryPersonID == "" {
		return ErrNoDeliveryPerson
	}
	personID, err := strconv.ParseInt(deliveryPersonID, 10, 64)
	if err != nil || personID <= 0 {
		return fmt.Errorf("%w: delivery person %q", ErrInvalidInput, deliveryPersonID)
	}
	return s.transition(ctx, id, domain.ActionAssign, func(ctx context.Context, order domain.Order, _ domain.Status) error {
		return wrap(ErrAssignFailed, s.gateway.AssignDelivery(ctx, order.ID, personID))
	})
}

func (s *Service) Discard() {
	s.boards.Forget(s.sessionID)
}

func (s *Service) transition(ctx context.Context, id int64, action domain.Action, send func(context.Context, domain.Order, domain.Status) error) error {
	board, err := s.Board(ctx)
	if err != nil && board == nil {
		return err
	}
	order, ok := board.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownOrder, id)
	}
	to, ok := domain.Next(order.Status, action)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, action, order.Status)
	}
	if err := send(ctx, order, to); err != nil {
		return err
	}
	// the action went through; a failed re-fetch only leaves an emptier board
	_, _ = s.Load(ctx)
	return nil
}

var _ ports.Service = (*Service)(nil)
