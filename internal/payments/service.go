package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
)

// intentCreator exchanges an amount for a gateway client secret.
type intentCreator interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error)
}

// EventPublisher pushes domain events to the message broker. Nil-safe at
// the service level so the API can boot without a broker in dev.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, payload []byte) error
}

// CreatePaymentInput carries a new purchase record.
type CreatePaymentInput struct {
	SellerEmail string
	Category    string
	Amount      decimal.Decimal
}

// PaymentPaidEvent is emitted when a payment transitions to paid.
type PaymentPaidEvent struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	BuyerEmail  string          `json:"buyer_email"`
	SellerEmail string          `json:"seller_email"`
	Category    string          `json:"category"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
	PaidAt      time.Time       `json:"paid_at"`
}

// Service defines payment operations and the dashboard reductions.
type Service interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error)
	Create(ctx context.Context, buyerEmail string, input CreatePaymentInput) (*models.Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	AdminDashboard(ctx context.Context) (*Summary, error)
	SellerDashboard(ctx context.Context, sellerEmail string) (*Summary, error)
}

type service struct {
	repo      *Repository
	gateway   intentCreator
	publisher EventPublisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a payments service. The publisher may be nil; paid
// events are then skipped rather than failing the transition.
func NewService(repo *Repository, gateway intentCreator, publisher EventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	return &service{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// CreateIntent validates the amount before touching the gateway: a
// non-positive amount is rejected with no side effects.
func (s *service) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	clientSecret, err := s.gateway.CreatePaymentIntent(ctx, amount)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating payment intent")
	}
	return clientSecret, nil
}

func (s *service) Create(ctx context.Context, buyerEmail string, input CreatePaymentInput) (*models.Payment, error) {
	sellerEmail := strings.ToLower(strings.TrimSpace(input.SellerEmail))
	category := strings.TrimSpace(input.Category)

	if sellerEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sellerEmail is required")
	}
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	payment, err := s.repo.Create(ctx, &models.Payment{
		BuyerEmail:  buyerEmail,
		SellerEmail: sellerEmail,
		Category:    category,
		PaidTotal:   input.Amount,
		Status:      enums.PaymentStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating payment")
	}
	return payment, nil
}

// MarkPaid transitions a payment pending -> paid. A payment that exists
// but is already paid surfaces UpdateFailed, not success, so callers can
// tell a replay from a first transition.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment")
	}

	affected, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking payment paid")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpdateFailed, "payment status update modified no records")
	}

	payment.Status = enums.PaymentStatusPaid
	s.emitPaid(ctx, payment)
	return payment, nil
}

// emitPaid publishes the paid event. Failures are logged, never surfaced:
// the status transition already committed.
func (s *service) emitPaid(ctx context.Context, payment *models.Payment) {
	if s.publisher == nil {
		return
	}

	event := PaymentPaidEvent{
		PaymentID:   payment.ID,
		BuyerEmail:  payment.BuyerEmail,
		SellerEmail: payment.SellerEmail,
		Category:    payment.Category,
		PaidTotal:   payment.PaidTotal,
		PaidAt:      s.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "payment.paid.encode_failed", err)
		}
		return
	}

	if err := s.publisher.PublishPaymentEvent(ctx, payload); err != nil {
		if s.logg != nil {
			logCtx := s.logg.WithField(ctx, "payment_id", payment.ID.String())
			s.logg.Error(logCtx, "payment.paid.publish_failed", err)
		}
	}
}

func (s *service) AdminDashboard(ctx context.Context) (*Summary, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payments")
	}
	summary := Aggregate(records)
	return &summary, nil
}

func (s *service) SellerDashboard(ctx context.Context, sellerEmail string) (*Summary, error) {
	records, err := s.repo.ListBySeller(ctx, strings.ToLower(strings.TrimSpace(sellerEmail)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading seller payments")
	}
	summary := Aggregate(records)
	return &summary, nil
}
