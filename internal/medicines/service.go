package medicines

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

// categoryChecker verifies that a category label exists before a listing
// may reference it.
type categoryChecker interface {
	ExistsByLabel(ctx context.Context, label string) (bool, error)
}

// CreateMedicineInput carries a new listing's fields.
type CreateMedicineInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
}

// Service defines seller catalog operations.
type Service interface {
	Create(ctx context.Context, sellerEmail string, input CreateMedicineInput) (*models.Medicine, error)
	List(ctx context.Context, category string) ([]models.Medicine, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]models.Medicine, error)
	Delete(ctx context.Context, sellerEmail string, id uuid.UUID) error
}

type service struct {
	repo       *Repository
	categories categoryChecker
}

// NewService builds a medicines service with the required dependencies.
func NewService(repo *Repository, categories categoryChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("medicines repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category checker required")
	}
	return &service{repo: repo, categories: categories}, nil
}

func (s *service) Create(ctx context.Context, sellerEmail string, input CreateMedicineInput) (*models.Medicine, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)

	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	exists, err := s.categories.ExistsByLabel(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": category})
	}

	medicine, err := s.repo.Create(ctx, &models.Medicine{
		SellerEmail: sellerEmail,
		Category:    category,
		Name:        name,
		Price:       input.Price,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating medicine")
	}
	return medicine, nil
}

func (s *service) List(ctx context.Context, category string) ([]models.Medicine, error) {
	medicines, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing medicines")
	}
	return medicines, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerEmail string) ([]models.Medicine, error) {
	medicines, err := s.repo.ListBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing seller medicines")
	}
	return medicines, nil
}

// Delete removes a listing owned by the seller. Listings the seller does
// not own are indistinguishable from missing ones.
func (s *service) Delete(ctx context.Context, sellerEmail string, id uuid.UUID) error {
	affected, err := s.repo.DeleteOwned(ctx, id, sellerEmail)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting medicine")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
	}
	return nil
}
