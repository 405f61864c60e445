package promotions

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharifahmad/medimart-backend/pkg/enums"
	pkgerrors "github.com/sharifahmad/medimart-backend/pkg/errors"
)

func setupPromotionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE IF NOT EXISTS promotions (
		id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(2)) || '-' || hex(randomblob(6)))),
		item_name TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func newPromotionsService(t *testing.T) (Service, *Repository) {
	t.Helper()

	repo := NewRepository(setupPromotionsTestDB(t))
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc, repo
}

func TestRequestCreatesPending(t *testing.T) {
	svc, _ := newPromotionsService(t)
	ctx := context.Background()

	promotion, err := svc.Request(ctx, "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", promotion.ItemName)
	assert.Equal(t, enums.PromotionStatusPending, promotion.Status)
}

func TestRequestResetsAcceptedToPending(t *testing.T) {
	svc, _ := newPromotionsService(t)
	ctx := context.Background()

	promotion, err := svc.Request(ctx, "Aspirin")
	require.NoError(t, err)

	outcome, err := svc.Accept(ctx, promotion.ID)
	require.NoError(t, err)
	require.False(t, outcome.Retired)

	promotion, err = svc.Request(ctx, "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, enums.PromotionStatusPending, promotion.Status)
}

func TestAcceptTogglesPendingToAccepted(t *testing.T) {
	svc, repo := newPromotionsService(t)
	ctx := context.Background()

	promotion, err := svc.Request(ctx, "Aspirin")
	require.NoError(t, err)

	outcome, err := svc.Accept(ctx, promotion.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", outcome.ItemName)
	assert.Equal(t, enums.PromotionStatusAccepted.String(), outcome.Status)
	assert.False(t, outcome.Retired)

	stored, err := repo.FindByID(ctx, promotion.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PromotionStatusAccepted, stored.Status)
}

func TestAcceptRetiresAcceptedPromotion(t *testing.T) {
	svc, repo := newPromotionsService(t)
	ctx := context.Background()

	promotion, err := svc.Request(ctx, "Aspirin")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, promotion.ID)
	require.NoError(t, err)

	outcome, err := svc.Accept(ctx, promotion.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Retired)

	_, err = repo.FindByID(ctx, promotion.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAcceptUnknownPromotion(t *testing.T) {
	svc, _ := newPromotionsService(t)

	_, err := svc.Accept(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListAcceptedFiltersBannerRows(t *testing.T) {
	svc, _ := newPromotionsService(t)
	ctx := context.Background()

	first, err := svc.Request(ctx, "Aspirin")
	require.NoError(t, err)
	_, err = svc.Request(ctx, "Bandage")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, first.ID)
	require.NoError(t, err)

	banner, err := svc.ListAccepted(ctx)
	require.NoError(t, err)
	require.Len(t, banner, 1)
	assert.Equal(t, "Aspirin", banner[0].ItemName)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
