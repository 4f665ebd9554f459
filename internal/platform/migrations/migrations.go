package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the console schema. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&sessionRecord{})
}

// Session schema mirrors the auth Postgres session store.
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
