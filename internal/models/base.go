package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains the columns shared by all tables. Primary keys are
// time-ordered UUIDv7 strings so inserts stay index-friendly.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUIDv7 to new records, falling back to UUIDv4 if
// v7 generation fails.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			b.ID = uuid.NewString()
			return nil
		}
		b.ID = id.String()
	}
	return nil
}
