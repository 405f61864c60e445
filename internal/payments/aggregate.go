package payments

import (
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
	"github.com/sharifahmad/medimart-backend/pkg/enums"
)

// BreakdownRow is one (label, value) pair in the category table. The first
// row is always the synthetic header ("Category", "Total Paid").
type BreakdownRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the reduced view of a payment record set.
type Summary struct {
	Total        decimal.Decimal `json:"total"`
	PendingTotal decimal.Decimal `json:"pendingTotal"`
	PaidTotal    decimal.Decimal `json:"paidTotal"`
	Breakdown    []BreakdownRow  `json:"categoryBreakdown"`
}

// Aggregate reduces payments into totals, status-partitioned totals, and
// the per-category table. Categories keep first-seen order and each sums
// the record amounts regardless of status. An empty input yields zero
// totals and a header-only breakdown.
func Aggregate(records []models.Payment) Summary {
	summary := Summary{
		Total:        decimal.Zero,
		PendingTotal: decimal.Zero,
		PaidTotal:    decimal.Zero,
	}

	order := make([]string, 0, len(records))
	byCategory := make(map[string]decimal.Decimal, len(records))

	for _, record := range records {
		summary.Total = summary.Total.Add(record.PaidTotal)

		switch record.Status {
		case enums.PaymentStatusPending:
			summary.PendingTotal = summary.PendingTotal.Add(record.PaidTotal)
		case enums.PaymentStatusPaid:
			summary.PaidTotal = summary.PaidTotal.Add(record.PaidTotal)
		}

		if _, ok := byCategory[record.Category]; !ok {
			order = append(order, record.Category)
		}
		byCategory[record.Category] = byCategory[record.Category].Add(record.PaidTotal)
	}

	summary.Breakdown = make([]BreakdownRow, 0, len(order)+1)
	summary.Breakdown = append(summary.Breakdown, BreakdownRow{Label: "Category", Value: "Total Paid"})
	for _, label := range order {
		summary.Breakdown = append(summary.Breakdown, BreakdownRow{
			Label: label,
			Value: byCategory[label].StringFixed(2),
		})
	}

	return summary
}
