package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the user or, on email conflict, refreshes the mutable
// identity columns. Role is deliberately left alone on conflict.
func (r *Repository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	assignments := map[string]any{
		"name":         user.Name,
		"last_updated": user.LastUpdated,
	}
	if user.PasswordHash != nil {
		assignments["password_hash"] = *user.PasswordHash
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(user).Error
	if err != nil {
		return nil, err
	}

	return r.FindByEmail(ctx, user.Email)
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user ordered by email.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole updates the role for a user id and reports affected rows.
func (r *Repository) SetRole(ctx context.Context, id uuid.UUID, role enums.Role) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("role", role.String())
	return res.RowsAffected, res.Error
}
