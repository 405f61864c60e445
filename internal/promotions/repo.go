package promotions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// Repository exposes promotion persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a promotions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a pending request for the item name, or resets an
// existing row back to pending.
func (r *Repository) Upsert(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status": enums.PromotionStatusPending.String(),
			}),
		}).
		Create(promotion).Error
	if err != nil {
		return nil, err
	}
	return r.FindByItemName(ctx, promotion.ItemName)
}

// FindByID loads one promotion by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

// FindByItemName loads one promotion by its item name.
func (r *Repository) FindByItemName(ctx context.Context, itemName string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).Where("item_name = ?", itemName).First(&promotion).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

// UpdateStatus moves a promotion from one status to another, reporting
// affected rows. The from-predicate makes concurrent toggles safe.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.PromotionStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("id = ? AND status = ?", id, from.String()).
		Update("status", to.String())
	return res.RowsAffected, res.Error
}

// DeleteByID removes a promotion row, reporting affected rows.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Promotion{})
	return res.RowsAffected, res.Error
}

// ListByStatus returns promotions with the given status in insertion order.
func (r *Repository) ListByStatus(ctx context.Context, status enums.PromotionStatus) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Find(&promotions).Error
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// ListAll returns every promotion in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&promotions).Error
	if err != nil {
		return nil, err
	}
	return promotions, nil
}
