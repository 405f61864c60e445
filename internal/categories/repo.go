package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
)

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category and returns the persisted model.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads one category by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByLabel retrieves the category matching the provided label.
func (r *Repository) FindByLabel(ctx context.Context, label string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("label = ?", label).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByLabel reports whether a category with the label exists.
func (r *Repository) ExistsByLabel(ctx context.Context, label string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("label = ?", label).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns every category ordered by label.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("label ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteByID removes a category row and reports affected rows.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	return res.RowsAffected, res.Error
}
