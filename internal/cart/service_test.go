package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS cart_entries (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		buyer_email TEXT NOT NULL,
		item_name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC NOT NULL,
		created_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func newCartService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(NewRepository(setupCartTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestAddValidatesInput(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()

	cases := []AddEntryInput{
		{Category: "x", Price: decimal.RequireFromString("1")},
		{ItemName: "Aspirin", Price: decimal.RequireFromString("1")},
		{ItemName: "Aspirin", Category: "x", Price: decimal.Zero},
	}
	for _, input := range cases {
		_, err := svc.Add(ctx, "buyer@example.com", input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestGetConsolidatesDuplicateAdds(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()

	price := decimal.RequireFromString("2.50")
	for _, item := range []string{"Aspirin", "Bandage", "Aspirin"} {
		_, err := svc.Add(ctx, "buyer@example.com", AddEntryInput{
			ItemName: item,
			Category: "Analgesics",
			Price:    price,
		})
		require.NoError(t, err)
	}

	view, err := svc.Get(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "Aspirin", view.Lines[0].ItemName)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("7.50")), "total %s", view.Total)
}

func TestGetEmptyCart(t *testing.T) {
	svc := newCartService(t)

	view, err := svc.Get(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}

func TestRemoveIsOwnerScoped(t *testing.T) {
	svc := newCartService(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, "buyer@example.com", AddEntryInput{
		ItemName: "Aspirin",
		Category: "Analgesics",
		Price:    decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)

	err = svc.Remove(ctx, "other@example.com", entry.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.Remove(ctx, "buyer@example.com", entry.ID))

	view, err := svc.Get(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestRemoveUnknownEntry(t *testing.T) {
	svc := newCartService(t)

	err := svc.Remove(context.Background(), "buyer@example.com", uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
