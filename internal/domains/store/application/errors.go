package application

import (
	"errors"
	"fmt"
)

var (
	// ErrOpenFailed wraps backend failures of the open command.
	ErrOpenFailed = errors.New("store open failed")
	// ErrCloseFailed wraps backend failures of the close command.
	ErrCloseFailed = errors.New("store close failed")
	// ErrStatusUnavailable wraps failures of the status fetch.
	ErrStatusUnavailable = errors.New("store status unavailable")
)

func wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}
