package application

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionNotAllowed marks an action the order's status does not offer.
	ErrTransitionNotAllowed = errors.New("order transition not allowed")
	// ErrNoDeliveryPerson marks an assignment submitted without a selection.
	ErrNoDeliveryPerson = errors.New("no delivery person selected")
	// ErrUnknownOrder marks an order id missing from the board.
	ErrUnknownOrder = errors.New("order not on board")
	// ErrInvalidInput marks malformed identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpdateFailed wraps backend failures of status changes.
	ErrUpdateFailed = errors.New("order status update failed")
	// ErrAssignFailed wraps backend failures of delivery assignment.
	ErrAssignFailed = errors.New("delivery assignment failed")
	// ErrListUnavailable wraps failures of the board fetch.
	ErrListUnavailable = errors.New("orders unavailable")
)

func wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}
