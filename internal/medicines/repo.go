package medicines

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
)

// Repository exposes medicine catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a medicines repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new listing and returns the persisted model.
func (r *Repository) Create(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return nil, err
	}
	return medicine, nil
}

// List returns the catalog ordered by creation time, optionally filtered
// by category label.
func (r *Repository) List(ctx context.Context, category string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// ListBySeller returns the seller's listings ordered by creation time.
func (r *Repository) ListBySeller(ctx context.Context, sellerEmail string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.WithContext(ctx).
		Where("seller_email = ?", sellerEmail).
		Order("created_at ASC").
		Find(&medicines).Error
	if err != nil {
		return nil, err
	}
	return medicines, nil
}

// DeleteOwned removes a listing only when the seller owns it, reporting
// affected rows.
func (r *Repository) DeleteOwned(ctx context.Context, id uuid.UUID, sellerEmail string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND seller_email = ?", id, sellerEmail).
		Delete(&models.Medicine{})
	return res.RowsAffected, res.Error
}

// DeleteByCategory purges every listing under a category label.
func (r *Repository) DeleteByCategory(ctx context.Context, label string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("category = ?", label).
		Delete(&models.Medicine{})
	return res.RowsAffected, res.Error
}
