package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog items by label. Deleting a category cascades to
// medicines and cart entries sharing the label (value equality, no FK).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Label     string    `gorm:"type:text;not null;uniqueIndex" json:"label"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
