package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// Promotion is a seller's promoted-listing request keyed by item name.
// Accepting an accepted promotion deletes the row (retire), so a row only
// ever holds pending or accepted.
type Promotion struct {
	ID        uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemName  string                `gorm:"column:item_name;type:text;not null;uniqueIndex" json:"itemName"`
	Status    enums.PromotionStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
