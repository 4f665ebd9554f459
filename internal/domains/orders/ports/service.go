package ports

import (
	"context"

	"github.com/Apurer/delivery-console/internal/domains/orders/domain"
)

// Service exposes the orders board of one session to adapters.
type Service interface {
	// Load fetches orders and delivery staff and replaces the board.
	Load(ctx context.Context) (*domain.Board, error)
	// Board returns the current board, loading it when none is held.
	Board(ctx context.Context) (*domain.Board, error)
	Accept(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	Deliver(ctx context.Context, id int64) error
	Assign(ctx context.Context, id int64, deliveryPersonID string) error
	// Discard drops the board when the operator leaves the orders page.
	Discard()
}

// BoardCache keeps the fetched board of each session between requests.
type BoardCache interface {
	Get(sessionID string) (*domain.Board, bool)
	Put(sessionID string, board *domain.Board)
	Forget(sessionID string)
}
