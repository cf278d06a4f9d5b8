package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/inventory-sheets/internal/models"
)

const (
	recentActivityCount = 5
	chartDays           = 7
	chartLabelLayout    = "2006-01-02"
)

type DashboardStats struct {
	TotalItems       int                  `json:"totalItems"`
	LowStock         int                  `json:"lowStock"`
	OutOfStock       int                  `json:"outOfStock"`
	TotalValue       float64              `json:"totalValue"`
	RecentActivities []models.Transaction `json:"recentActivities"`
	Chart            Chart                `json:"chart"`
}

// Chart holds daily stock movement totals, oldest day first.
type Chart struct {
	Labels   []string `json:"labels"`
	StockIn  []int    `json:"stockIn"`
	StockOut []int    `json:"stockOut"`
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	items, err := s.items.GetAll(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	txs, err := s.transactions.GetAll(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	latest, err := s.transactions.Recent(ctx, recentActivityCount)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := ComputeDashboard(items)
	if len(latest) > 0 {
		stats.RecentActivities = latest
	}
	stats.Chart = BuildChart(txs, s.now())
	return stats, nil
}

// ComputeDashboard derives the item counters and the total stock value.
// A blank quantity counts as 0; other non-numeric text is neither low nor out
// of stock.
func ComputeDashboard(items []models.Item) DashboardStats {
	stats := DashboardStats{
		TotalItems:       len(items),
		RecentActivities: []models.Transaction{},
	}

	total := decimal.Zero
	for _, item := range items {
		qty, numeric := item.Qty.Float()
		if item.Qty.IsBlank() {
			qty, numeric = 0, true
		}
		if numeric {
			switch {
			case qty <= 0:
				stats.OutOfStock++
			case qty < LowStockThreshold:
				stats.LowStock++
			}
		}

		cost, _ := item.UnitCost.Float()
		total = total.Add(decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(cost)))
	}
	stats.TotalValue = total.InexactFloat64()
	return stats
}

// BuildChart buckets transaction quantities by UTC day for the seven days
// ending on now. Rows with an unreadable date or quantity are skipped.
func BuildChart(txs []models.Transaction, now time.Time) Chart {
	today := now.UTC().Truncate(24 * time.Hour)
	first := today.AddDate(0, 0, -(chartDays - 1))

	chart := Chart{
		Labels:   make([]string, chartDays),
		StockIn:  make([]int, chartDays),
		StockOut: make([]int, chartDays),
	}
	for i := range chartDays {
		chart.Labels[i] = first.AddDate(0, 0, i).Format(chartLabelLayout)
	}

	for _, tx := range txs {
		at, err := time.Parse(timestampLayout, tx.Date)
		if err != nil {
			continue
		}
		day := int(at.UTC().Truncate(24*time.Hour).Sub(first) / (24 * time.Hour))
		if day < 0 || day >= chartDays {
			continue
		}
		qty, ok := tx.Quantity.Int()
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TransactionStockIn:
			chart.StockIn[day] += qty
		case models.TransactionStockOut:
			chart.StockOut[day] += qty
		}
	}
	return chart
}
