package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCreateFailed wraps backend failures of product and category creation.
	ErrCreateFailed = errors.New("catalog create failed")
	// ErrUpdateFailed wraps backend failures of product updates.
	ErrUpdateFailed = errors.New("catalog update failed")
	// ErrDeleteFailed wraps backend failures of deletions.
	ErrDeleteFailed = errors.New("catalog delete failed")
	// ErrListUnavailable wraps failures of the catalog fetch.
	ErrListUnavailable = errors.New("catalog unavailable")
)

func wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}
