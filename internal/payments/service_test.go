package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

type stubGateway struct {
	secret string
	err    error
	calls  int
}

func (s *stubGateway) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	s.calls++
	return s.secret, s.err
}

type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (c *capturingPublisher) PublishPaymentEvent(ctx context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return c.err
}

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		buyer_email TEXT NOT NULL,
		seller_email TEXT NOT NULL,
		category TEXT NOT NULL,
		paid_total NUMERIC NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func newPaymentsFixture(t *testing.T) (Service, *stubGateway, *capturingPublisher) {
	t.Helper()

	gateway := &stubGateway{secret: "pi_secret"}
	publisher := &capturingPublisher{}
	svc, err := NewService(NewRepository(setupPaymentsTestDB(t)), gateway, publisher, nil)
	require.NoError(t, err)
	return svc, gateway, publisher
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc, gateway, _ := newPaymentsFixture(t)

	for _, amount := range []string{"0", "-1"} {
		_, err := svc.CreateIntent(context.Background(), decimal.RequireFromString(amount))
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
	assert.Zero(t, gateway.calls, "gateway must not be called for invalid amounts")
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	svc, gateway, _ := newPaymentsFixture(t)

	secret, err := svc.CreateIntent(context.Background(), decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", secret)
	assert.Equal(t, 1, gateway.calls)
}

func TestCreateIntentWrapsGatewayFailure(t *testing.T) {
	svc, gateway, _ := newPaymentsFixture(t)
	gateway.err = errors.New("gateway down")

	_, err := svc.CreateIntent(context.Background(), decimal.RequireFromString("9.99"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestCreateStartsPending(t *testing.T) {
	svc, _, _ := newPaymentsFixture(t)

	payment, err := svc.Create(context.Background(), "buyer@example.com", CreatePaymentInput{
		SellerEmail: "Seller@Example.com",
		Category:    "Analgesics",
		Amount:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPending, payment.Status)
	assert.Equal(t, "seller@example.com", payment.SellerEmail)
}

func TestMarkPaidTransitionsAndPublishes(t *testing.T) {
	svc, _, publisher := newPaymentsFixture(t)
	ctx := context.Background()

	payment, err := svc.Create(ctx, "buyer@example.com", CreatePaymentInput{
		SellerEmail: "seller@example.com",
		Category:    "Analgesics",
		Amount:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	updated, err := svc.MarkPaid(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, updated.Status)

	require.Len(t, publisher.payloads, 1)
	var event PaymentPaidEvent
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &event))
	assert.Equal(t, payment.ID, event.PaymentID)
	assert.Equal(t, "Analgesics", event.Category)
}

func TestMarkPaidReplayIsConflict(t *testing.T) {
	svc, _, publisher := newPaymentsFixture(t)
	ctx := context.Background()

	payment, err := svc.Create(ctx, "buyer@example.com", CreatePaymentInput{
		SellerEmail: "seller@example.com",
		Category:    "Analgesics",
		Amount:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, payment.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, payment.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUpdateFailed, typed.Code())
	assert.Len(t, publisher.payloads, 1, "replay must not publish a second event")
}

func TestMarkPaidUnknownPayment(t *testing.T) {
	svc, _, _ := newPaymentsFixture(t)

	_, err := svc.MarkPaid(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestMarkPaidSurvivesPublishFailure(t *testing.T) {
	svc, _, publisher := newPaymentsFixture(t)
	publisher.err = errors.New("broker down")
	ctx := context.Background()

	payment, err := svc.Create(ctx, "buyer@example.com", CreatePaymentInput{
		SellerEmail: "seller@example.com",
		Category:    "Analgesics",
		Amount:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	updated, err := svc.MarkPaid(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusPaid, updated.Status)
}

func TestDashboardsReduceBySeller(t *testing.T) {
	svc, _, _ := newPaymentsFixture(t)
	ctx := context.Background()

	for _, seller := range []string{"a@example.com", "a@example.com", "b@example.com"} {
		_, err := svc.Create(ctx, "buyer@example.com", CreatePaymentInput{
			SellerEmail: seller,
			Category:    "Analgesics",
			Amount:      decimal.RequireFromString("10"),
		})
		require.NoError(t, err)
	}

	admin, err := svc.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.True(t, admin.Total.Equal(decimal.RequireFromString("30")), "total %s", admin.Total)

	seller, err := svc.SellerDashboard(ctx, "A@Example.com")
	require.NoError(t, err)
	assert.True(t, seller.Total.Equal(decimal.RequireFromString("20")), "total %s", seller.Total)
}
