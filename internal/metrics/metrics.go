// Package metrics computes the dashboard figures from the raw ledger
// collections. It is a pure function over snapshots; it never touches
// storage.
package metrics

import (
	"time"

	"vyaparhub/backend/internal/domain"
)

// Compute aggregates transactions and products into the dashboard figures.
//
// Bucketing preserves the historical behavior: the daily figure matches on
// calendar day in now's location, the monthly figure matches on month number
// alone (a sale from July of any year counts toward this July), all
// transaction types contribute positively, and an entry whose date fails to
// parse as RFC3339 contributes to neither bucket. Pending bills are tracked
// nowhere, so the count is always zero.
func Compute(transactions []domain.Transaction, products []domain.Product, now time.Time) domain.DashboardMetrics {
	m := domain.DashboardMetrics{}

	for _, tx := range transactions {
		ts, err := time.Parse(time.RFC3339, tx.Date)
		if err != nil {
			continue
		}
		ts = ts.In(now.Location())

		if ts.Month() == now.Month() {
			m.MonthlySales += tx.Amount
		}
		if ts.Year() == now.Year() && ts.Month() == now.Month() && ts.Day() == now.Day() {
			m.TodaySales += tx.Amount
		}
	}

	for _, p := range products {
		if p.Stock <= p.MinStock {
			m.LowStockCount++
		}
	}

	return m
}
