package ports

import "context"

// Gateway reaches the backend store status endpoints.
type Gateway interface {
	Status(ctx context.Context) (bool, error)
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}
