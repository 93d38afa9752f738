package structs

import (
	"time"

	"github.com/shopspring/decimal"

	"kubwa_closet_server/structs/tables"
)

// ReportPeriod tags the date-range shorthand a report is asked for.
type ReportPeriod string

const (
	PeriodWeek   ReportPeriod = "week"   // last 7 days inclusive of today
	PeriodMonth  ReportPeriod = "month"  // first of this month to now
	PeriodYear   ReportPeriod = "year"   // Jan 1 to now
	PeriodCustom ReportPeriod = "custom" // explicit from/to dates
)

// ReportQuery is the raw, unresolved report request. FromDate/ToDate
// are only consulted for PeriodCustom and use YYYY-MM-DD.
type ReportQuery struct {
	Period   ReportPeriod
	FromDate string
	ToDate   string
}

// DailyBucket accumulates one calendar day of sales for charting.
// Revenue is sp_at_sale x quantity; Profit sums the stored per-sale
// profit field (not revenue - cogs; the totals do that instead).
type DailyBucket struct {
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

type Report struct {
	Period ReportPeriod `json:"period"`
	Title  string       `json:"title"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCOGS    decimal.Decimal `json:"total_cogs"`
	TotalProfit  decimal.Decimal `json:"total_profit"` // revenue - cogs, derived
	TotalUnits   int             `json:"total_units"`

	DailySales map[string]*DailyBucket `json:"daily_sales"` // keyed by YYYY-MM-DD
	Sales      []tables.Sale           `json:"sales"`
}

// DashboardMetrics summarizes the shop for the admin landing view.
type DashboardMetrics struct {
	TotalStock    int             `json:"total_stock"`
	NetWorthBP    decimal.Decimal `json:"net_worth_bp"`
	NetWorthSP    decimal.Decimal `json:"net_worth_sp"`
	WeeklyProfit  decimal.Decimal `json:"weekly_profit"`
	MonthlyProfit decimal.Decimal `json:"monthly_profit"`
	RecentSales   []tables.Sale   `json:"recent_sales"`
}
