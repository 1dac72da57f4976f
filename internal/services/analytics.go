package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"resto_pos_backend/internal/models"
)

// ErrInvalidPeriod is returned when the period selector is not one of the
// supported values. A wrong window would silently corrupt every metric, so
// this is fatal to the whole summary computation.
var ErrInvalidPeriod = errors.New("invalid report period")

// UncategorizedLabel is the category name used for catalog entries whose
// free-text category is empty.
const UncategorizedLabel = "Uncategorized"

// Business hours covered by the hourly histogram (inclusive).
const (
	openingHour = 9  // 9AM
	closingHour = 21 // 9PM
)

const trendDays = 7

// SalesRules carries the business-rule constants used by the summary
// computation. Net sales, discounts, tax, charges and the voided counts are
// flat-rate placeholders until per-order discount and tax fields exist in
// the order schema; keeping them here lets a deployment override them and
// lets tests assert exact values.
type SalesRules struct {
	NetSalesRate       float64
	DiscountRate       float64
	TaxRate            float64
	ChargesRate        float64
	NetTotalRate       float64
	VoidedOrderRate    float64
	VoidedTransferRate float64
	// RoundingAmount is a fixed adjustment applied to the summary. The
	// legacy system used a random jitter here; a constant keeps the
	// computation deterministic.
	RoundingAmount float64
	TotalOutlets   int
}

// DefaultSalesRules returns the flat-rate constants used in production.
func DefaultSalesRules() SalesRules {
	return SalesRules{
		NetSalesRate:       0.90,
		DiscountRate:       0.05,
		TaxRate:            0.10,
		ChargesRate:        0.02,
		NetTotalRate:       0.97,
		VoidedOrderRate:    0.02,
		VoidedTransferRate: 0.01,
		RoundingAmount:     0,
		TotalOutlets:       3,
	}
}

// resolvePeriodWindow maps a period selector to the start of the reporting
// window and the divisor used for the daily sales average. The window end is
// always "now": in particular the yesterday window intentionally runs
// through the current moment and therefore includes today's orders.
func resolvePeriodWindow(period models.ReportPeriod, now time.Time) (time.Time, float64, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case models.PeriodToday:
		return midnight, 1, nil
	case models.PeriodYesterday:
		return midnight.AddDate(0, 0, -1), 1, nil
	case models.PeriodWeek:
		return midnight.AddDate(0, 0, -7), 7, nil
	case models.PeriodMonth:
		return midnight.AddDate(0, -1, 0), 30, nil
	default:
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// inWindow reports whether t falls inside [start, end]. Zero timestamps are
// treated as malformed records and excluded from every window.
func inWindow(t, start, end time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// BuildSalesSummary computes a full sales summary from the materialized
// order list and product catalog. It is a pure function: identical inputs
// always yield an identical summary, it does not mutate its arguments, and
// the caller supplies the clock.
//
// Scalar metrics cover orders whose OrderTime falls in the window selected
// by period. The 7-day trend and the hourly histogram use fixed windows
// (last 7 calendar days, today) regardless of period.
func BuildSalesSummary(orders []models.Order, products []models.Product, period models.ReportPeriod, rules SalesRules, now time.Time) (*models.SalesSummary, error) {
	start, dailyDivisor, err := resolvePeriodWindow(period, now)
	if err != nil {
		return nil, err
	}

	var completed, pending, cancelled []models.Order
	for _, o := range orders {
		if !inWindow(o.OrderTime, start, now) {
			continue
		}
		switch o.Status {
		case models.OrderStatusCompleted:
			completed = append(completed, o)
		case models.OrderStatusPending:
			pending = append(pending, o)
		case models.OrderStatusCancelled:
			cancelled = append(cancelled, o)
		}
		// Unknown statuses contribute to no bucket.
	}

	summary := &models.SalesSummary{
		TransactionCount:          len(completed),
		CancelledTransactionCount: len(cancelled),
		OpenOrderQuantity:         len(pending),
		TotalOutlets:              rules.TotalOutlets,
		RoundingAmount:            rules.RoundingAmount,
	}

	distinctCustomers := make(map[string]struct{})
	for _, o := range completed {
		summary.GrossAmount += o.TotalAmount
		distinctCustomers[o.CustomerName] = struct{}{}
		for _, item := range o.Items {
			summary.Quantity += item.Quantity
		}
	}
	for _, o := range pending {
		summary.OpenOrderAmount += o.TotalAmount
	}

	summary.NetSales = summary.GrossAmount * rules.NetSalesRate
	summary.Discounts = summary.GrossAmount * rules.DiscountRate
	summary.Tax = summary.GrossAmount * rules.TaxRate
	summary.Charges = summary.GrossAmount * rules.ChargesRate
	summary.NetTotal = summary.GrossAmount * rules.NetTotalRate
	summary.DailyAverageSales = summary.GrossAmount / dailyDivisor

	// Ratio metrics must come back as 0 for an empty window, never NaN.
	if summary.TransactionCount > 0 {
		summary.AverageValue = summary.GrossAmount / float64(summary.TransactionCount)
		summary.AverageUnit = float64(summary.Quantity) / float64(summary.TransactionCount)
	}
	if len(distinctCustomers) > 0 {
		summary.CustomerAverageValue = summary.GrossAmount / float64(len(distinctCustomers))
	}

	summary.VoidedTransactions = int(math.Floor(float64(summary.TransactionCount) * rules.VoidedOrderRate))
	summary.VoidedTransferCount = int(math.Floor(float64(summary.TransactionCount) * rules.VoidedTransferRate))

	summary.CategoryBreakdown = buildCategoryBreakdown(completed, products, summary.GrossAmount)
	summary.SalesTrend = buildSalesTrend(orders, now)
	summary.HourlySales = buildHourlyHistogram(orders, now)

	return summary, nil
}

// buildCategoryBreakdown attributes completed-order item revenue to product
// categories. Items are matched to the catalog by product ID, falling back
// to a name match only for legacy lines that carry no ID. Items that match
// no product are dropped, so the breakdown may sum to less than the gross
// amount.
func buildCategoryBreakdown(completed []models.Order, products []models.Product, grossAmount float64) []models.CategorySales {
	byID := make(map[int64]*models.Product, len(products))
	byName := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
		byName[products[i].Name] = &products[i]
	}

	salesByCategory := make(map[string]float64)
	for _, o := range completed {
		for _, item := range o.Items {
			var product *models.Product
			if item.ProductID != nil {
				product = byID[*item.ProductID]
			} else {
				product = byName[item.Name]
			}
			if product == nil {
				continue
			}
			category := product.Category
			if category == "" {
				category = UncategorizedLabel
			}
			salesByCategory[category] += item.UnitPrice * float64(item.Quantity)
		}
	}

	breakdown := make([]models.CategorySales, 0, len(salesByCategory))
	for name, sales := range salesByCategory {
		var share float64
		if grossAmount > 0 {
			share = roundToOneDecimal(sales / grossAmount * 100)
		}
		breakdown = append(breakdown, models.CategorySales{Name: name, Value: share, Sales: sales})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Sales != breakdown[j].Sales {
			return breakdown[i].Sales > breakdown[j].Sales
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return breakdown
}

// buildSalesTrend returns one bucket per calendar day for the 7 days ending
// today, oldest first, counting completed orders only. Buckets are keyed by
// absolute date; the weekday abbreviation is projected at output time.
func buildSalesTrend(orders []models.Order, now time.Time) []models.TrendPoint {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	trend := make([]models.TrendPoint, 0, trendDays)

	for i := trendDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		point := models.TrendPoint{Name: dayStart.Weekday().String()[:3]}
		for _, o := range orders {
			if o.Status != models.OrderStatusCompleted || o.OrderTime.IsZero() {
				continue
			}
			if !o.OrderTime.Before(dayStart) && o.OrderTime.Before(dayEnd) {
				point.Sales += o.TotalAmount
				point.Orders++
			}
		}
		trend = append(trend, point)
	}
	return trend
}

// buildHourlyHistogram counts today's orders of any status per clock hour
// across business hours. Orders outside 9AM-9PM are excluded, not clipped
// into the edge buckets.
func buildHourlyHistogram(orders []models.Order, now time.Time) []models.HourlyBucket {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	counts := make([]int, closingHour-openingHour+1)
	for _, o := range orders {
		if o.OrderTime.IsZero() || o.OrderTime.Before(dayStart) || !o.OrderTime.Before(dayEnd) {
			continue
		}
		hour := o.OrderTime.Hour()
		if hour < openingHour || hour > closingHour {
			continue
		}
		counts[hour-openingHour]++
	}

	histogram := make([]models.HourlyBucket, 0, len(counts))
	for h := openingHour; h <= closingHour; h++ {
		histogram = append(histogram, models.HourlyBucket{
			Hour:   formatHourLabel(h),
			Orders: counts[h-openingHour],
		})
	}
	return histogram
}

// formatHourLabel renders a 0-23 clock hour as a 12-hour AM/PM label,
// with noon as 12PM and midnight as 12AM.
func formatHourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12AM"
	case hour < 12:
		return fmt.Sprintf("%dAM", hour)
	case hour == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", hour-12)
	}
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
