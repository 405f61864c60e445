package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
)

// Repository exposes cart persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one cart entry. Duplicates are expected; consolidation
// happens on read.
func (r *Repository) Create(ctx context.Context, entry *models.CartEntry) (*models.CartEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByBuyer returns the buyer's entries in insertion order.
func (r *Repository) ListByBuyer(ctx context.Context, buyerEmail string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.db.WithContext(ctx).
		Where("buyer_email = ?", buyerEmail).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteOwned removes one entry only when the buyer owns it, reporting
// affected rows.
func (r *Repository) DeleteOwned(ctx context.Context, id uuid.UUID, buyerEmail string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND buyer_email = ?", id, buyerEmail).
		Delete(&models.CartEntry{})
	return res.RowsAffected, res.Error
}

// DeleteByCategory purges every cart entry under a category label.
func (r *Repository) DeleteByCategory(ctx context.Context, label string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("category = ?", label).
		Delete(&models.CartEntry{})
	return res.RowsAffected, res.Error
}
