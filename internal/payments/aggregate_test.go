package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

func payment(category, amount string, status enums.PaymentStatus) models.Payment {
	return models.Payment{
		BuyerEmail:  "buyer@example.com",
		SellerEmail: "seller@example.com",
		Category:    category,
		PaidTotal:   decimal.RequireFromString(amount),
		Status:      status,
	}
}

func TestAggregatePartitionsByStatus(t *testing.T) {
	records := []models.Payment{
		payment("X", "10", enums.PaymentStatusPending),
		payment("X", "20", enums.PaymentStatusPaid),
		payment("Y", "5", enums.PaymentStatusPaid),
	}

	summary := Aggregate(records)

	assert.True(t, summary.Total.Equal(decimal.RequireFromString("35")), "total %s", summary.Total)
	assert.True(t, summary.PendingTotal.Equal(decimal.RequireFromString("10")), "pending %s", summary.PendingTotal)
	assert.True(t, summary.PaidTotal.Equal(decimal.RequireFromString("25")), "paid %s", summary.PaidTotal)
}

func TestAggregateBreakdownSumsAllStatuses(t *testing.T) {
	records := []models.Payment{
		payment("X", "10", enums.PaymentStatusPending),
		payment("X", "20", enums.PaymentStatusPaid),
		payment("Y", "5", enums.PaymentStatusPaid),
	}

	summary := Aggregate(records)
	require.Len(t, summary.Breakdown, 3)

	assert.Equal(t, BreakdownRow{Label: "Category", Value: "Total Paid"}, summary.Breakdown[0])
	assert.Equal(t, BreakdownRow{Label: "X", Value: "30.00"}, summary.Breakdown[1])
	assert.Equal(t, BreakdownRow{Label: "Y", Value: "5.00"}, summary.Breakdown[2])
}

func TestAggregateKeepsFirstSeenCategoryOrder(t *testing.T) {
	records := []models.Payment{
		payment("Z", "1", enums.PaymentStatusPaid),
		payment("A", "1", enums.PaymentStatusPaid),
		payment("Z", "1", enums.PaymentStatusPending),
		payment("M", "1", enums.PaymentStatusPaid),
	}

	summary := Aggregate(records)
	require.Len(t, summary.Breakdown, 4)
	assert.Equal(t, "Z", summary.Breakdown[1].Label)
	assert.Equal(t, "A", summary.Breakdown[2].Label)
	assert.Equal(t, "M", summary.Breakdown[3].Label)
	assert.Equal(t, "2.00", summary.Breakdown[1].Value)
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)

	assert.True(t, summary.Total.IsZero())
	assert.True(t, summary.PendingTotal.IsZero())
	assert.True(t, summary.PaidTotal.IsZero())
	require.Len(t, summary.Breakdown, 1)
	assert.Equal(t, BreakdownRow{Label: "Category", Value: "Total Paid"}, summary.Breakdown[0])
}
