package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

var reportNow = time.Date(2026, time.March, 15, 14, 30, 45, 0, time.UTC)

func TestResolveRangeWeek(t *testing.T) {
	start, end, period, title := ResolveRange(&structs.ReportQuery{Period: structs.PeriodWeek}, reportNow)

	if period != structs.PeriodWeek {
		t.Errorf("period = %q, want %q", period, structs.PeriodWeek)
	}
	if title != "Weekly Report" {
		t.Errorf("title = %q", title)
	}
	if want := reportNow.AddDate(0, 0, -6); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if !end.Equal(reportNow) {
		t.Errorf("end = %v, want %v", end, reportNow)
	}
}

func TestResolveRangeMonth(t *testing.T) {
	start, end, period, title := ResolveRange(&structs.ReportQuery{Period: structs.PeriodMonth}, reportNow)

	if period != structs.PeriodMonth || title != "Monthly Report" {
		t.Errorf("period = %q, title = %q", period, title)
	}
	want := time.Date(2026, time.March, 1, 14, 30, 45, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if !end.Equal(reportNow) {
		t.Errorf("end = %v, want %v", end, reportNow)
	}
}

func TestResolveRangeYear(t *testing.T) {
	start, _, period, title := ResolveRange(&structs.ReportQuery{Period: structs.PeriodYear}, reportNow)

	if period != structs.PeriodYear || title != "Yearly Report" {
		t.Errorf("period = %q, title = %q", period, title)
	}
	want := time.Date(2026, time.January, 1, 14, 30, 45, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
}

func TestResolveRangeCustom(t *testing.T) {
	query := &structs.ReportQuery{
		Period:   structs.PeriodCustom,
		FromDate: "2026-03-01",
		ToDate:   "2026-03-10",
	}
	start, end, period, title := ResolveRange(query, reportNow)

	if period != structs.PeriodCustom || title != "Custom Report" {
		t.Errorf("period = %q, title = %q", period, title)
	}
	wantStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	// The end bound is midnight of the end date, so a sale later that
	// day is outside the range
	wantEnd := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if saleTime := wantEnd.Add(13 * time.Hour); !saleTime.After(end) {
		t.Errorf("sale at %v should fall outside the range ending %v", saleTime, end)
	}
}

func TestResolveRangeFallsBackToWeek(t *testing.T) {
	tests := []struct {
		name  string
		query *structs.ReportQuery
	}{
		{"custom with bad dates", &structs.ReportQuery{Period: structs.PeriodCustom, FromDate: "03/01/2026", ToDate: "2026-03-10"}},
		{"custom with missing dates", &structs.ReportQuery{Period: structs.PeriodCustom}},
		{"unknown period", &structs.ReportQuery{Period: "quarter"}},
		{"empty period", &structs.ReportQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, period, title := ResolveRange(tt.query, reportNow)

			if period != structs.PeriodWeek || title != "Weekly Report" {
				t.Errorf("period = %q, title = %q, want weekly fallback", period, title)
			}
			if want := reportNow.AddDate(0, 0, -6); !start.Equal(want) {
				t.Errorf("start = %v, want %v", start, want)
			}
			if !end.Equal(reportNow) {
				t.Errorf("end = %v, want %v", end, reportNow)
			}
		})
	}
}

func saleOf(sp, bp string, quantity int, soldAt time.Time) tables.Sale {
	spd := decimal.RequireFromString(sp)
	bpd := decimal.RequireFromString(bp)
	return tables.Sale{
		Quantity: quantity,
		SPAtSale: spd,
		BPAtSale: bpd,
		Profit:   tables.SaleProfit(spd, bpd, quantity),
		SoldAt:   soldAt,
	}
}

func TestComputeTotals(t *testing.T) {
	sales := []tables.Sale{
		saleOf("1500", "1000", 3, reportNow),
		saleOf("25.50", "20.00", 2, reportNow),
	}

	revenue, cogs, profit, units := ComputeTotals(sales)

	if want := decimal.RequireFromString("4551"); !revenue.Equal(want) {
		t.Errorf("revenue = %s, want %s", revenue, want)
	}
	if want := decimal.RequireFromString("3040"); !cogs.Equal(want) {
		t.Errorf("cogs = %s, want %s", cogs, want)
	}
	if want := decimal.RequireFromString("1511"); !profit.Equal(want) {
		t.Errorf("profit = %s, want %s", profit, want)
	}
	if units != 5 {
		t.Errorf("units = %d, want 5", units)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	revenue, cogs, profit, units := ComputeTotals(nil)

	if !revenue.IsZero() || !cogs.IsZero() || !profit.IsZero() || units != 0 {
		t.Errorf("empty sales should yield zeros, got revenue=%s cogs=%s profit=%s units=%d", revenue, cogs, profit, units)
	}
}

func TestComputeTotalsMatchesSnapshotProfit(t *testing.T) {
	// With untouched history the revenue-minus-cogs total equals the
	// sum of the stored per-sale profits.
	sales := []tables.Sale{
		saleOf("1500", "1000", 3, reportNow),
		saleOf("800", "1000", 1, reportNow),
	}

	_, _, profit, _ := ComputeTotals(sales)

	snapshot := decimal.Zero
	for _, sale := range sales {
		snapshot = snapshot.Add(sale.Profit)
	}
	if !profit.Equal(snapshot) {
		t.Errorf("profit = %s, snapshot sum = %s", profit, snapshot)
	}
}

func TestBuildDailyBuckets(t *testing.T) {
	day1 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2026, time.March, 10, 17, 45, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

	sales := []tables.Sale{
		saleOf("1500", "1000", 1, day1),
		saleOf("200", "150", 2, day1Later),
		saleOf("50", "30", 1, day2),
	}

	buckets := BuildDailyBuckets(sales)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	first, ok := buckets["2026-03-10"]
	if !ok {
		t.Fatal("missing bucket for 2026-03-10")
	}
	if want := decimal.RequireFromString("1900"); !first.Revenue.Equal(want) {
		t.Errorf("day one revenue = %s, want %s", first.Revenue, want)
	}
	if want := decimal.RequireFromString("600"); !first.Profit.Equal(want) {
		t.Errorf("day one profit = %s, want %s", first.Profit, want)
	}

	second, ok := buckets["2026-03-11"]
	if !ok {
		t.Fatal("missing bucket for 2026-03-11")
	}
	if want := decimal.RequireFromString("50"); !second.Revenue.Equal(want) {
		t.Errorf("day two revenue = %s, want %s", second.Revenue, want)
	}
	if want := decimal.RequireFromString("20"); !second.Profit.Equal(want) {
		t.Errorf("day two profit = %s, want %s", second.Profit, want)
	}
}
