package models

// ReportPeriod selects the reporting window for scalar sales metrics.
// The trend series and hourly histogram use fixed windows and ignore it.
type ReportPeriod string

const (
	PeriodToday     ReportPeriod = "today"
	PeriodYesterday ReportPeriod = "yesterday"
	PeriodWeek      ReportPeriod = "week"
	PeriodMonth     ReportPeriod = "month"
)

// CategorySales is one slice of the category revenue breakdown.
// Value is the share of gross revenue in percent, rounded to one decimal.
type CategorySales struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Sales float64 `json:"sales"`
}

// TrendPoint is one day of the rolling 7-day sales trend.
// Name carries the weekday abbreviation (Sun..Sat).
type TrendPoint struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// HourlyBucket is one business hour of today's order histogram.
type HourlyBucket struct {
	Hour   string `json:"hour"`
	Orders int    `json:"orders"`
}

// SalesSummary holds all metrics for the dashboard and sales reports.
// It is recomputed on demand and never persisted.
type SalesSummary struct {
	GrossAmount               float64 `json:"gross_amount"`
	NetSales                  float64 `json:"net_sales"`
	Discounts                 float64 `json:"discounts"`
	Tax                       float64 `json:"tax"`
	Charges                   float64 `json:"charges"`
	RoundingAmount            float64 `json:"rounding_amount"`
	NetTotal                  float64 `json:"net_total"`
	DailyAverageSales         float64 `json:"daily_average_sales"`
	Quantity                  int     `json:"quantity"`
	TransactionCount          int     `json:"transaction_count"`
	VoidedTransactions        int     `json:"voided_transactions"`
	VoidedTransferCount       int     `json:"voided_transfer_count"`
	CancelledTransactionCount int     `json:"cancelled_transaction_count"`
	AverageValue              float64 `json:"average_value"`
	AverageUnit               float64 `json:"average_unit"`
	CustomerAverageValue      float64 `json:"customer_average_value"`
	OpenOrderQuantity         int     `json:"open_order_quantity"`
	OpenOrderAmount           float64 `json:"open_order_amount"`
	TotalOutlets              int     `json:"total_outlets"`

	CategoryBreakdown []CategorySales `json:"category_breakdown"`
	SalesTrend        []TrendPoint    `json:"sales_trend"`
	HourlySales       []HourlyBucket  `json:"hourly_sales"`
}
