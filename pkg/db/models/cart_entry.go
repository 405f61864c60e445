package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartEntry is one add-to-cart action. Entries are never deduplicated at
// write time; consolidation happens on read.
type CartEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BuyerEmail string          `gorm:"column:buyer_email;type:text;not null;index" json:"buyerEmail"`
	ItemName   string          `gorm:"column:item_name;type:text;not null" json:"itemName"`
	Category   string          `gorm:"type:text;not null;index" json:"category"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
