package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db"
	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// medicinePurger removes catalog rows referencing a category label.
type medicinePurger interface {
	DeleteByCategory(ctx context.Context, label string) (int64, error)
}

// cartPurger removes cart rows referencing a category label.
type cartPurger interface {
	DeleteByCategory(ctx context.Context, label string) (int64, error)
}

// Service defines category operations including the cascading delete.
type Service interface {
	Create(ctx context.Context, label string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*CascadeResult, error)
}

// CascadeResult reports what one cascading delete actually removed.
type CascadeResult struct {
	Label              string `json:"label"`
	MedicinesDeleted   int64  `json:"medicinesDeleted"`
	CartEntriesDeleted int64  `json:"cartEntriesDeleted"`
	CategoryDeleted    bool   `json:"categoryDeleted"`
}

type service struct {
	repo      *Repository
	medicines medicinePurger
	cart      cartPurger
	logg      *logger.Logger
}

// NewService builds a categories service with the required dependencies.
func NewService(repo *Repository, medicines medicinePurger, cart cartPurger, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if medicines == nil {
		return nil, fmt.Errorf("medicine purger required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart purger required")
	}
	return &service{
		repo:      repo,
		medicines: medicines,
		cart:      cart,
		logg:      logg,
	}, nil
}

func (s *service) Create(ctx context.Context, label string) (*models.Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "label is required")
	}

	category, err := s.repo.Create(ctx, &models.Category{Label: label})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return category, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

// Delete removes the category and everything that references its label.
// Child purges are best-effort: a failure in one does not stop the others
// or the category delete itself, and every failure is collected into the
// returned error alongside whatever progress was made.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*CascadeResult, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}

	result := &CascadeResult{Label: category.Label}
	var errs error

	medicinesDeleted, err := s.medicines.DeleteByCategory(ctx, category.Label)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purging medicines: %w", err))
	}
	result.MedicinesDeleted = medicinesDeleted

	cartDeleted, err := s.cart.DeleteByCategory(ctx, category.Label)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purging cart entries: %w", err))
	}
	result.CartEntriesDeleted = cartDeleted

	affected, err := s.repo.DeleteByID(ctx, category.ID)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("deleting category: %w", err))
	}
	result.CategoryDeleted = affected > 0

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"category":             category.Label,
			"medicines_deleted":    result.MedicinesDeleted,
			"cart_entries_deleted": result.CartEntriesDeleted,
			"category_deleted":     result.CategoryDeleted,
		})
		s.logg.Info(logCtx, "category.cascade.complete")
	}

	if errs != nil {
		failures := make([]string, 0, len(multierr.Errors(errs)))
		for _, e := range multierr.Errors(errs) {
			failures = append(failures, e.Error())
		}
		return result, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "cascade completed with failures").
			WithDetails(map[string]any{"failures": failures})
	}
	return result, nil
}
