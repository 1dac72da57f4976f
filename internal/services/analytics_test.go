package services

import (
	"testing"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Saturday afternoon, so the trend window covers Sun..Sat.
var testNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func completedOrder(t time.Time, amount float64, customer string, items ...models.OrderItem) models.Order {
	return models.Order{
		CustomerName: customer,
		Status:       models.OrderStatusCompleted,
		TotalAmount:  amount,
		OrderTime:    t,
		Items:        items,
	}
}

func orderWithStatus(status string, t time.Time, amount float64) models.Order {
	return models.Order{
		CustomerName: "walk-in",
		Status:       status,
		TotalAmount:  amount,
		OrderTime:    t,
	}
}

func item(productID int64, name string, qty int, unitPrice float64) models.OrderItem {
	return models.OrderItem{
		ProductID:  &productID,
		Name:       name,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(qty),
	}
}

func namedItem(name string, qty int, unitPrice float64) models.OrderItem {
	return models.OrderItem{
		Name:       name,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(qty),
	}
}

func TestBuildSalesSummary_InvalidPeriod(t *testing.T) {
	_, err := BuildSalesSummary(nil, nil, "fortnight", DefaultSalesRules(), testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestBuildSalesSummary_EmptyInputs(t *testing.T) {
	summary, err := BuildSalesSummary(nil, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	assert.Zero(t, summary.GrossAmount)
	assert.Zero(t, summary.NetSales)
	assert.Zero(t, summary.TransactionCount)
	assert.Zero(t, summary.Quantity)

	// Ratio metrics must be 0 for an empty window, never NaN.
	assert.Zero(t, summary.AverageValue)
	assert.Zero(t, summary.AverageUnit)
	assert.Zero(t, summary.CustomerAverageValue)

	assert.Empty(t, summary.CategoryBreakdown)
	assert.Len(t, summary.SalesTrend, 7)
	assert.Len(t, summary.HourlySales, 13)
	for _, point := range summary.SalesTrend {
		assert.Zero(t, point.Sales)
		assert.Zero(t, point.Orders)
	}
	for _, bucket := range summary.HourlySales {
		assert.Zero(t, bucket.Orders)
	}
}

func TestBuildSalesSummary_TodayScalars(t *testing.T) {
	today := func(hour, min int) time.Time {
		return time.Date(2025, time.March, 15, hour, min, 0, 0, time.UTC)
	}

	orders := []models.Order{
		completedOrder(today(10, 0), 100, "alice",
			item(1, "Latte", 2, 30),
			item(2, "Burger", 1, 40),
		),
		completedOrder(today(12, 0), 50, "bob",
			item(1, "Latte", 1, 30),
		),
		orderWithStatus(models.OrderStatusPending, today(13, 0), 40),
		orderWithStatus(models.OrderStatusCancelled, today(11, 0), 999),
		// Unknown status contributes to no bucket.
		orderWithStatus("refunded", today(11, 30), 500),
		// Zero timestamp is malformed and excluded everywhere.
		orderWithStatus(models.OrderStatusCompleted, time.Time{}, 500),
		// Yesterday's order is outside the today window.
		completedOrder(today(10, 0).AddDate(0, 0, -1), 77, "carol"),
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	assert.InDelta(t, 150.0, summary.GrossAmount, 1e-9)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.Equal(t, 4, summary.Quantity)
	assert.Equal(t, 1, summary.CancelledTransactionCount)
	assert.Equal(t, 1, summary.OpenOrderQuantity)
	assert.InDelta(t, 40.0, summary.OpenOrderAmount, 1e-9)

	assert.InDelta(t, 135.0, summary.NetSales, 1e-9)
	assert.InDelta(t, 7.5, summary.Discounts, 1e-9)
	assert.InDelta(t, 15.0, summary.Tax, 1e-9)
	assert.InDelta(t, 3.0, summary.Charges, 1e-9)
	assert.InDelta(t, 145.5, summary.NetTotal, 1e-9)
	assert.InDelta(t, 150.0, summary.DailyAverageSales, 1e-9)

	assert.InDelta(t, 75.0, summary.AverageValue, 1e-9)
	assert.InDelta(t, 2.0, summary.AverageUnit, 1e-9)
	assert.InDelta(t, 75.0, summary.CustomerAverageValue, 1e-9)

	// floor(2 * 0.02) and floor(2 * 0.01)
	assert.Equal(t, 0, summary.VoidedTransactions)
	assert.Equal(t, 0, summary.VoidedTransferCount)

	assert.Equal(t, 3, summary.TotalOutlets)
	assert.Zero(t, summary.RoundingAmount)
}

func TestBuildSalesSummary_CustomerAverageDedupesNames(t *testing.T) {
	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 100, "Alice"),
		completedOrder(testNow.Add(-2*time.Hour), 200, "Alice"),
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	// Two orders but one distinct customer: the per-customer average is the
	// whole gross, while the per-transaction average splits it.
	assert.InDelta(t, 300.0, summary.GrossAmount, 1e-9)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.InDelta(t, 300.0, summary.CustomerAverageValue, 1e-9)
	assert.InDelta(t, 150.0, summary.AverageValue, 1e-9)
}

func TestBuildSalesSummary_YesterdayWindowRunsThroughNow(t *testing.T) {
	orders := []models.Order{
		completedOrder(time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC), 100, "alice"),
		completedOrder(time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC), 50, "bob"),
		// Before yesterday's midnight, excluded.
		completedOrder(time.Date(2025, time.March, 13, 23, 0, 0, 0, time.UTC), 999, "carol"),
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodYesterday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	// The yesterday window ends at "now", so today's order is included too.
	assert.InDelta(t, 150.0, summary.GrossAmount, 1e-9)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.InDelta(t, 150.0, summary.DailyAverageSales, 1e-9)
}

func TestBuildSalesSummary_DailyAverageDivisors(t *testing.T) {
	orders := []models.Order{
		completedOrder(time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC), 210, "alice"),
	}

	week, err := BuildSalesSummary(orders, nil, models.PeriodWeek, DefaultSalesRules(), testNow)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, week.DailyAverageSales, 1e-9)

	month, err := BuildSalesSummary(orders, nil, models.PeriodMonth, DefaultSalesRules(), testNow)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, month.DailyAverageSales, 1e-9)
}

func TestBuildSalesSummary_VoidedCountsFloor(t *testing.T) {
	rules := DefaultSalesRules()
	rules.VoidedOrderRate = 0.5
	rules.VoidedTransferRate = 0.4

	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 10, "a"),
		completedOrder(testNow.Add(-2*time.Hour), 10, "b"),
		completedOrder(testNow.Add(-3*time.Hour), 10, "c"),
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, rules, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.VoidedTransactions)  // floor(1.5)
	assert.Equal(t, 1, summary.VoidedTransferCount) // floor(1.2)
}

func TestBuildSalesSummary_RulesOverride(t *testing.T) {
	rules := SalesRules{
		NetSalesRate:   0.5,
		NetTotalRate:   1.0,
		RoundingAmount: 0.25,
		TotalOutlets:   7,
	}
	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 200, "alice"),
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, rules, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.NetSales, 1e-9)
	assert.InDelta(t, 200.0, summary.NetTotal, 1e-9)
	assert.Zero(t, summary.Discounts)
	assert.Zero(t, summary.Tax)
	assert.InDelta(t, 0.25, summary.RoundingAmount, 1e-9)
	assert.Equal(t, 7, summary.TotalOutlets)
}

func TestBuildSalesSummary_CategoryBreakdown(t *testing.T) {
	stock := 10
	products := []models.Product{
		{ID: 1, Name: "Latte", Category: "Drinks", Price: 5, Stock: &stock, IsAvailable: true},
		{ID: 2, Name: "Burger", Category: "Food", Price: 10, IsAvailable: true},
		{ID: 3, Name: "Mystery Box", Category: "", Price: 4, IsAvailable: true},
	}

	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 40, "alice",
			item(1, "Latte", 2, 5),            // Drinks: 10
			namedItem("Burger", 1, 10),        // Food via name fallback: 10
			item(3, "Mystery Box", 1, 4),      // Uncategorized: 4
			item(99, "Ghost Special", 1, 100), // no catalog match, dropped
			namedItem("Phantom", 1, 50),       // no catalog match, dropped
		),
	}

	summary, err := BuildSalesSummary(orders, products, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	require.Len(t, summary.CategoryBreakdown, 3)

	// Ties on sales break alphabetically.
	assert.Equal(t, "Drinks", summary.CategoryBreakdown[0].Name)
	assert.InDelta(t, 10.0, summary.CategoryBreakdown[0].Sales, 1e-9)
	assert.InDelta(t, 25.0, summary.CategoryBreakdown[0].Value, 1e-9)

	assert.Equal(t, "Food", summary.CategoryBreakdown[1].Name)
	assert.InDelta(t, 10.0, summary.CategoryBreakdown[1].Sales, 1e-9)
	assert.InDelta(t, 25.0, summary.CategoryBreakdown[1].Value, 1e-9)

	assert.Equal(t, UncategorizedLabel, summary.CategoryBreakdown[2].Name)
	assert.InDelta(t, 4.0, summary.CategoryBreakdown[2].Sales, 1e-9)
	assert.InDelta(t, 10.0, summary.CategoryBreakdown[2].Value, 1e-9)
}

func TestBuildSalesSummary_CategoryBreakdownEmptyWhenNothingMatches(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Latte", Category: "Drinks", Price: 5, IsAvailable: true},
	}
	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 50, "alice",
			item(99, "Off-Menu Special", 1, 50),
		),
	}

	summary, err := BuildSalesSummary(orders, products, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	// Gross still counts the order; the breakdown just has nothing to show.
	assert.InDelta(t, 50.0, summary.GrossAmount, 1e-9)
	assert.Empty(t, summary.CategoryBreakdown)
}

func TestBuildSalesSummary_CategoryLookupPrefersProductID(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Latte", Category: "Drinks", Price: 5, IsAvailable: true},
		{ID: 2, Name: "Espresso", Category: "Coffee", Price: 3, IsAvailable: true},
	}

	// The item carries product ID 2 but the (stale) name of product 1. The
	// ID match must win.
	staleItem := item(2, "Latte", 1, 3)
	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 3, "alice", staleItem),
	}

	summary, err := BuildSalesSummary(orders, products, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	require.Len(t, summary.CategoryBreakdown, 1)
	assert.Equal(t, "Coffee", summary.CategoryBreakdown[0].Name)
}

func TestBuildSalesSummary_SalesTrend(t *testing.T) {
	day := func(d, hour int) time.Time {
		return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC)
	}

	orders := []models.Order{
		completedOrder(day(9, 10), 20, "alice"),  // oldest trend day (Sunday)
		completedOrder(day(15, 11), 30, "bob"),   // today (Saturday)
		completedOrder(day(15, 12), 15, "carol"), // today
		orderWithStatus(models.OrderStatusPending, day(15, 13), 99),   // not completed
		orderWithStatus(models.OrderStatusCancelled, day(12, 13), 99), // not completed
		completedOrder(day(8, 12), 999, "dave"),                       // before the window
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	trend := summary.SalesTrend
	require.Len(t, trend, 7)

	labels := make([]string, 0, len(trend))
	for _, p := range trend {
		labels = append(labels, p.Name)
	}
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, labels)

	assert.InDelta(t, 20.0, trend[0].Sales, 1e-9)
	assert.Equal(t, 1, trend[0].Orders)

	for _, p := range trend[1:6] {
		assert.Zero(t, p.Sales)
		assert.Zero(t, p.Orders)
	}

	assert.InDelta(t, 45.0, trend[6].Sales, 1e-9)
	assert.Equal(t, 2, trend[6].Orders)
}

func TestBuildSalesSummary_TrendIgnoresPeriod(t *testing.T) {
	orders := []models.Order{
		completedOrder(time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC), 40, "alice"),
	}

	today, err := BuildSalesSummary(orders, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)
	month, err := BuildSalesSummary(orders, nil, models.PeriodMonth, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	assert.Equal(t, today.SalesTrend, month.SalesTrend)
	assert.Equal(t, today.HourlySales, month.HourlySales)
}

func TestBuildSalesSummary_HourlyHistogram(t *testing.T) {
	at := func(d, hour, min int) time.Time {
		return time.Date(2025, time.March, d, hour, min, 0, 0, time.UTC)
	}

	orders := []models.Order{
		completedOrder(at(15, 9, 15), 10, "alice"),
		orderWithStatus(models.OrderStatusPending, at(15, 14, 5), 20),
		orderWithStatus(models.OrderStatusCancelled, at(15, 21, 59), 30),
		completedOrder(at(15, 8, 59), 10, "bob"),  // before opening
		completedOrder(at(15, 22, 0), 10, "carol"), // after closing
		completedOrder(at(14, 10, 0), 10, "dave"),  // yesterday
	}

	summary, err := BuildSalesSummary(orders, nil, models.PeriodToday, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	histogram := summary.HourlySales
	require.Len(t, histogram, 13)

	assert.Equal(t, "9AM", histogram[0].Hour)
	assert.Equal(t, "12PM", histogram[3].Hour)
	assert.Equal(t, "9PM", histogram[12].Hour)

	// Any status counts, business hours only, today only.
	assert.Equal(t, 1, histogram[0].Orders)  // 9AM
	assert.Equal(t, 1, histogram[5].Orders)  // 2PM
	assert.Equal(t, 1, histogram[12].Orders) // 9PM

	total := 0
	for _, bucket := range histogram {
		total += bucket.Orders
	}
	assert.Equal(t, 3, total)
}

func TestBuildSalesSummary_Deterministic(t *testing.T) {
	stock := 5
	products := []models.Product{
		{ID: 1, Name: "Latte", Category: "Drinks", Price: 5, Stock: &stock, IsAvailable: true},
		{ID: 2, Name: "Burger", Category: "Food", Price: 10, IsAvailable: true},
	}
	orders := []models.Order{
		completedOrder(testNow.Add(-time.Hour), 25, "alice",
			item(1, "Latte", 3, 5),
			item(2, "Burger", 1, 10),
		),
		orderWithStatus(models.OrderStatusPending, testNow.Add(-30*time.Minute), 10),
	}

	first, err := BuildSalesSummary(orders, products, models.PeriodWeek, DefaultSalesRules(), testNow)
	require.NoError(t, err)
	second, err := BuildSalesSummary(orders, products, models.PeriodWeek, DefaultSalesRules(), testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormatHourLabel(t *testing.T) {
	cases := map[int]string{
		0:  "12AM",
		1:  "1AM",
		9:  "9AM",
		11: "11AM",
		12: "12PM",
		13: "1PM",
		21: "9PM",
		23: "11PM",
	}
	for hour, want := range cases {
		assert.Equal(t, want, formatHourLabel(hour), "hour %d", hour)
	}
}

func TestResolvePeriodWindow(t *testing.T) {
	midnight := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	start, divisor, err := resolvePeriodWindow(models.PeriodToday, testNow)
	require.NoError(t, err)
	assert.Equal(t, midnight, start)
	assert.Equal(t, 1.0, divisor)

	start, divisor, err = resolvePeriodWindow(models.PeriodYesterday, testNow)
	require.NoError(t, err)
	assert.Equal(t, midnight.AddDate(0, 0, -1), start)
	assert.Equal(t, 1.0, divisor)

	start, divisor, err = resolvePeriodWindow(models.PeriodWeek, testNow)
	require.NoError(t, err)
	assert.Equal(t, midnight.AddDate(0, 0, -7), start)
	assert.Equal(t, 7.0, divisor)

	start, divisor, err = resolvePeriodWindow(models.PeriodMonth, testNow)
	require.NoError(t, err)
	assert.Equal(t, midnight.AddDate(0, -1, 0), start)
	assert.Equal(t, 30.0, divisor)

	_, _, err = resolvePeriodWindow("quarter", testNow)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
