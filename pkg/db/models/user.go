package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// User is the canonical identity record. Email is the only stable
// identifier; Role stays unset until an admin assigns it.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Name         string     `gorm:"type:text;not null" json:"name"`
	Role         enums.Role `gorm:"type:text;not null;default:'unset'" json:"role"`
	PasswordHash *string    `gorm:"column:password_hash" json:"-"`
	LastUpdated  time.Time  `gorm:"column:last_updated;not null" json:"lastUpdated"`
}
