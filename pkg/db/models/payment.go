package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Payment records one purchase. Status only ever moves pending -> paid.
type Payment struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BuyerEmail  string              `gorm:"column:buyer_email;type:text;not null;index" json:"buyerEmail"`
	SellerEmail string              `gorm:"column:seller_email;type:text;not null;index" json:"sellerEmail"`
	Category    string              `gorm:"type:text;not null" json:"category"`
	PaidTotal   decimal.Decimal     `gorm:"column:paid_total;type:numeric(12,2);not null" json:"paidTotal"`
	Status      enums.PaymentStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
