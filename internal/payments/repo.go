package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// Repository exposes payment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pending payment and returns the persisted model.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// FindByID loads one payment by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// MarkPaid flips a pending payment to paid, reporting affected rows. The
// status predicate makes the transition one-way; a second call matches
// nothing.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, enums.PaymentStatusPending.String()).
		Update("status", enums.PaymentStatusPaid.String())
	return res.RowsAffected, res.Error
}

// ListAll returns every payment in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListBySeller returns one seller's payments in insertion order.
func (r *Repository) ListBySeller(ctx context.Context, sellerEmail string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("seller_email = ?", sellerEmail).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
