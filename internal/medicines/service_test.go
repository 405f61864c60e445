package medicines

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

type stubCategoryChecker struct {
	known map[string]bool
}

func (s stubCategoryChecker) ExistsByLabel(ctx context.Context, label string) (bool, error) {
	return s.known[label], nil
}

func setupMedicinesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS medicines (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		seller_email TEXT NOT NULL,
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		created_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func newMedicinesService(t *testing.T) Service {
	t.Helper()

	checker := stubCategoryChecker{known: map[string]bool{"Analgesics": true}}
	svc, err := NewService(NewRepository(setupMedicinesTestDB(t)), checker)
	require.NoError(t, err)
	return svc
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := newMedicinesService(t)

	_, err := svc.Create(context.Background(), "seller@example.com", CreateMedicineInput{
		Name:     "Bandage",
		Category: "First Aid",
		Price:    decimal.RequireFromString("1.00"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	svc := newMedicinesService(t)

	_, err := svc.Create(context.Background(), "seller@example.com", CreateMedicineInput{
		Name:     "Aspirin",
		Category: "Analgesics",
		Price:    decimal.Zero,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateAndListByCategory(t *testing.T) {
	svc := newMedicinesService(t)
	ctx := context.Background()

	medicine, err := svc.Create(ctx, "seller@example.com", CreateMedicineInput{
		Name:     " Aspirin ",
		Category: "Analgesics",
		Price:    decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", medicine.Name)

	listed, err := svc.List(ctx, "Analgesics")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	none, err := svc.List(ctx, "First Aid")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	svc := newMedicinesService(t)
	ctx := context.Background()

	medicine, err := svc.Create(ctx, "seller@example.com", CreateMedicineInput{
		Name:     "Aspirin",
		Category: "Analgesics",
		Price:    decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, "other@example.com", medicine.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.Delete(ctx, "seller@example.com", medicine.ID))
}

func TestDeleteUnknownListing(t *testing.T) {
	svc := newMedicinesService(t)

	err := svc.Delete(context.Background(), "seller@example.com", uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
