package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

var (
	// ErrAuthentication wraps every login failure; callers show one generic message.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRegistration wraps backend rejections of a sign-up.
	ErrRegistration = errors.New("registration failed")
	// ErrNoSession signals a missing, expired or torn-down session.
	ErrNoSession = errors.New("no active session")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	if errors.Is(err, domain.ErrEmptyToken) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
