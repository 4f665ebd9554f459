package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrEmptyToken = errors.New("bearer token is required")

// Session is the explicit console session: it owns the backend bearer token and
// any alerts waiting to be shown after a redirect. Logging out destroys it.
type Session struct {
	ID        string
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Flashes   []string
}

// NewSession opens a session for a freshly issued token. When the token is a JWT
// carrying an exp claim the session ends with it, otherwise after fallbackTTL.
func NewSession(token, email string, now time.Time, fallbackTTL time.Duration) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	expiresAt := now.Add(fallbackTTL)
	if exp, ok := TokenExpiry(token); ok && exp.After(now) {
		expiresAt = exp
	}
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// TokenExpiry reads the exp claim without verifying the signature. The token is
// opaque to the console; this only bounds how long the session is kept.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AddFlash queues an alert for the next rendered page.
func (s *Session) AddFlash(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	s.Flashes = append(s.Flashes, message)
}

// PopFlashes drains queued alerts.
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
