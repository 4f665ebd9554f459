package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/delivery-console/internal/domains/auth/domain"
	"github.com/Apurer/delivery-console/internal/domains/auth/ports"
)

// SessionStore persists console sessions in PostgreSQL.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:64"`
	Token     string         `gorm:"column:token;type:text"`
	Email     string         `gorm:"column:email;index"`
	Flashes   pq.StringArray `gorm:"column:flashes;type:text[]"`
	ExpiresAt *time.Time     `gorm:"column:expires_at;index"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "console_sessions" }

// Save upserts a session keyed by its id.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return errors.New("session id is required")
	}
	rec := toRecord(session)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "email", "flashes", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get loads a live session.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND (expires_at IS NULL OR expires_at > ?)", strings.TrimSpace(id), s.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error
}

// PurgeExpired removes all expired sessions and reports how many went. Use for housekeeping or cron.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).Delete(&sessionRecord{})
	return res.RowsAffected, res.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

func toRecord(session *domain.Session) sessionRecord {
	rec := sessionRecord{
		ID:        session.ID,
		Token:     session.Token,
		Email:     session.Email,
		Flashes:   pq.StringArray(append([]string{}, session.Flashes...)),
		CreatedAt: session.CreatedAt,
	}
	if !session.ExpiresAt.IsZero() {
		expiresAt := session.ExpiresAt
		rec.ExpiresAt = &expiresAt
	}
	return rec
}

func toDomain(rec sessionRecord) *domain.Session {
	session := &domain.Session{
		ID:        rec.ID,
		Token:     rec.Token,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
	}
	if len(rec.Flashes) > 0 {
		session.Flashes = append([]string(nil), rec.Flashes...)
	}
	if rec.ExpiresAt != nil {
		session.ExpiresAt = *rec.ExpiresAt
	}
	return session
}

var _ ports.SessionStore = (*SessionStore)(nil)
