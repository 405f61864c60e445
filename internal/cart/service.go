package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

// AddEntryInput carries one add-to-cart action. The listing's fields are
// copied into the entry so later catalog changes never rewrite carts.
type AddEntryInput struct {
	ItemName string
	Category string
	Price    decimal.Decimal
}

// View is the consolidated cart returned to buyers.
type View struct {
	Lines []ConsolidatedLine `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// Service defines buyer cart operations.
type Service interface {
	Add(ctx context.Context, buyerEmail string, input AddEntryInput) (*models.CartEntry, error)
	Get(ctx context.Context, buyerEmail string) (*View, error)
	Remove(ctx context.Context, buyerEmail string, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds a cart service bound to the cart repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Add(ctx context.Context, buyerEmail string, input AddEntryInput) (*models.CartEntry, error) {
	itemName := strings.TrimSpace(input.ItemName)
	category := strings.TrimSpace(input.Category)

	if itemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itemName is required")
	}
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	entry, err := s.repo.Create(ctx, &models.CartEntry{
		BuyerEmail: buyerEmail,
		ItemName:   itemName,
		Category:   category,
		Price:      input.Price,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding cart entry")
	}
	return entry, nil
}

// Get returns the consolidated view of the buyer's cart. An empty cart is
// a valid view with zero lines and a zero total.
func (s *service) Get(ctx context.Context, buyerEmail string) (*View, error) {
	entries, err := s.repo.ListByBuyer(ctx, buyerEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	lines := Consolidate(entries)
	return &View{
		Lines: lines,
		Total: Total(lines),
	}, nil
}

func (s *service) Remove(ctx context.Context, buyerEmail string, id uuid.UUID) error {
	affected, err := s.repo.DeleteOwned(ctx, id, buyerEmail)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart entry")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart entry not found")
	}
	return nil
}
