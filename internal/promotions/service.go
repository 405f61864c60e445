package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// DecisionOutcome reports what the accept toggle actually did.
type DecisionOutcome struct {
	ItemName string `json:"itemName"`
	Status   string `json:"status"`
	Retired  bool   `json:"retired"`
}

// Service defines the promotion lifecycle operations.
type Service interface {
	Request(ctx context.Context, itemName string) (*models.Promotion, error)
	Accept(ctx context.Context, id uuid.UUID) (*DecisionOutcome, error)
	ListAccepted(ctx context.Context) ([]models.Promotion, error)
	ListAll(ctx context.Context) ([]models.Promotion, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds a promotions service bound to its repository.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotions repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Request upserts a pending promotion for the item name. Re-requesting an
// item resets it to pending regardless of its current state.
func (s *service) Request(ctx context.Context, itemName string) (*models.Promotion, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "itemName is required")
	}

	promotion, err := s.repo.Upsert(ctx, &models.Promotion{
		ItemName: itemName,
		Status:   enums.PromotionStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "requesting promotion")
	}
	return promotion, nil
}

// Accept is a deliberate toggle: a pending promotion becomes accepted, and
// accepting an already-accepted promotion retires it by deleting the row.
func (s *service) Accept(ctx context.Context, id uuid.UUID) (*DecisionOutcome, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading promotion")
	}

	switch promotion.Status {
	case enums.PromotionStatusPending:
		affected, err := s.repo.UpdateStatus(ctx, id, enums.PromotionStatusPending, enums.PromotionStatusAccepted)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accepting promotion")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeUpdateFailed, "promotion update modified no records")
		}
		if s.logg != nil {
			logCtx := s.logg.WithField(ctx, "item_name", promotion.ItemName)
			s.logg.Info(logCtx, "promotion.accepted")
		}
		return &DecisionOutcome{
			ItemName: promotion.ItemName,
			Status:   enums.PromotionStatusAccepted.String(),
			Retired:  false,
		}, nil

	case enums.PromotionStatusAccepted:
		affected, err := s.repo.DeleteByID(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retiring promotion")
		}
		if affected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeUpdateFailed, "promotion delete modified no records")
		}
		if s.logg != nil {
			logCtx := s.logg.WithField(ctx, "item_name", promotion.ItemName)
			s.logg.Info(logCtx, "promotion.retired")
		}
		return &DecisionOutcome{
			ItemName: promotion.ItemName,
			Status:   enums.PromotionStatusAccepted.String(),
			Retired:  true,
		}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "promotion in unknown state")
	}
}

// ListAccepted feeds the public banner: only accepted promotions.
func (s *service) ListAccepted(ctx context.Context) ([]models.Promotion, error) {
	promotions, err := s.repo.ListByStatus(ctx, enums.PromotionStatusAccepted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing accepted promotions")
	}
	return promotions, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Promotion, error) {
	promotions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing promotions")
	}
	return promotions, nil
}
