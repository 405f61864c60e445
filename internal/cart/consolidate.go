package cart

import (
	"github.com/shopspring/decimal"

	"github.com/sharifahmad/medimart-backend/pkg/db/models"
)

// ConsolidatedLine is one distinct item in a cart view, with its
// occurrence count folded into quantity and subtotal.
type ConsolidatedLine struct {
	ItemName string          `json:"itemName"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Consolidate folds raw cart entries into distinct lines keyed by item
// name. Lines keep the order in which each item was first added; price and
// category come from the first occurrence.
func Consolidate(entries []models.CartEntry) []ConsolidatedLine {
	lines := make([]ConsolidatedLine, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, entry := range entries {
		if at, ok := index[entry.ItemName]; ok {
			lines[at].Quantity++
			lines[at].Subtotal = lines[at].Subtotal.Add(lines[at].Price)
			continue
		}
		index[entry.ItemName] = len(lines)
		lines = append(lines, ConsolidatedLine{
			ItemName: entry.ItemName,
			Category: entry.Category,
			Price:    entry.Price,
			Quantity: 1,
			Subtotal: entry.Price,
		})
	}

	return lines
}

// Total sums the subtotals of consolidated lines.
func Total(lines []ConsolidatedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return total
}
