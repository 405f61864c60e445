package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a catalog listing owned by a seller. Category references
// Category.Label by value, not by stored foreign key.
type Medicine struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerEmail string          `gorm:"column:seller_email;type:text;not null;index" json:"sellerEmail"`
	Category    string          `gorm:"type:text;not null;index" json:"category"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
