package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"

	"kubwa_closet_server/database"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

const dateLayout = "2006-01-02"

type ReportService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewReportService(logger *gecho.Logger, db *database.DB) *ReportService {
	return &ReportService{
		logger: logger,
		db:     db,
	}
}

// ResolveRange turns a report query into a concrete [start, end] window
// anchored at now. Custom ranges that fail to parse quietly fall back
// to the weekly window, tagged as such.
func ResolveRange(query *structs.ReportQuery, now time.Time) (start, end time.Time, period structs.ReportPeriod, title string) {
	end = now

	switch query.Period {
	case structs.PeriodMonth:
		// First of the month, keeping now's clock time
		start = time.Date(now.Year(), now.Month(), 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
		return start, end, structs.PeriodMonth, "Monthly Report"

	case structs.PeriodYear:
		start = time.Date(now.Year(), time.January, 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
		return start, end, structs.PeriodYear, "Yearly Report"

	case structs.PeriodCustom:
		from, errFrom := time.ParseInLocation(dateLayout, query.FromDate, now.Location())
		to, errTo := time.ParseInLocation(dateLayout, query.ToDate, now.Location())
		if errFrom != nil || errTo != nil {
			break // fall back to the weekly window
		}
		// Both bounds are midnight timestamps, so sales during the end
		// day itself fall outside the range
		return from, to, structs.PeriodCustom, "Custom Report"
	}

	start = now.AddDate(0, 0, -6)
	return start, end, structs.PeriodWeek, "Weekly Report"
}

// ComputeTotals derives the aggregate figures from a slice of sales.
// Total profit is revenue minus cost of goods, not the sum of the
// per-sale profit snapshots; the two agree unless history was edited.
func ComputeTotals(sales []tables.Sale) (revenue, cogs, profit decimal.Decimal, units int) {
	revenue = decimal.Zero
	cogs = decimal.Zero

	for _, sale := range sales {
		qty := decimal.NewFromInt(int64(sale.Quantity))
		revenue = revenue.Add(sale.SPAtSale.Mul(qty))
		cogs = cogs.Add(sale.BPAtSale.Mul(qty))
		units += sale.Quantity
	}

	return revenue, cogs, revenue.Sub(cogs), units
}

// BuildDailyBuckets groups sales by calendar day. Bucket profit sums
// the stored per-sale profit, matching the dashboard figures.
func BuildDailyBuckets(sales []tables.Sale) map[string]*structs.DailyBucket {
	buckets := make(map[string]*structs.DailyBucket)

	for _, sale := range sales {
		day := sale.SoldAt.Format(dateLayout)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &structs.DailyBucket{
				Revenue: decimal.Zero,
				Profit:  decimal.Zero,
			}
			buckets[day] = bucket
		}

		qty := decimal.NewFromInt(int64(sale.Quantity))
		bucket.Revenue = bucket.Revenue.Add(sale.SPAtSale.Mul(qty))
		bucket.Profit = bucket.Profit.Add(sale.Profit)
	}

	return buckets
}

// ComputeReport fetches the sales in the resolved window and assembles
// the full report
func (rs *ReportService) ComputeReport(ctx context.Context, query *structs.ReportQuery) (*structs.Report, error) {
	start, end, period, title := ResolveRange(query, time.Now())

	sales, err := rs.salesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	revenue, cogs, profit, units := ComputeTotals(sales)

	return &structs.Report{
		Period:       period,
		Title:        title,
		Start:        start,
		End:          end,
		TotalRevenue: revenue,
		TotalCOGS:    cogs,
		TotalProfit:  profit,
		TotalUnits:   units,
		DailySales:   BuildDailyBuckets(sales),
		Sales:        sales,
	}, nil
}

// ExportCSV renders the sales in the resolved window as a CSV document.
// Product names are resolved with one batch query; sales rows only
// carry the product id.
func (rs *ReportService) ExportCSV(ctx context.Context, query *structs.ReportQuery) ([]byte, string, error) {
	start, end, period, _ := ResolveRange(query, time.Now())

	sales, err := rs.salesInRange(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	products, err := rs.productsForSales(ctx, sales)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "Product Name", "Category", "Quantity", "Buying Price", "Selling Price", "Profit"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, sale := range sales {
		name := "(deleted)"
		category := ""
		if product, ok := products[sale.ProductID]; ok {
			name = product.Name
			category = string(product.Category)
		}

		record := []string{
			sale.SoldAt.Format("2006-01-02 15:04"),
			name,
			category,
			strconv.Itoa(sale.Quantity),
			sale.BPAtSale.StringFixed(2),
			sale.SPAtSale.StringFixed(2),
			sale.Profit.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := "sales_" + string(period) + "_" + start.Format(dateLayout) + "_" + end.Format(dateLayout) + ".csv"
	return buf.Bytes(), filename, nil
}

func (rs *ReportService) salesInRange(ctx context.Context, start, end time.Time) ([]tables.Sale, error) {
	sales, err := database.Query[tables.Sale](rs.db).
		WhereOp("sold_at", ">=", start).
		WhereOp("sold_at", "<=", end).
		OrderBy("sold_at", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return sales, nil
}

// productsForSales batch-loads the products referenced by a set of
// sales and indexes them by id
func (rs *ReportService) productsForSales(ctx context.Context, sales []tables.Sale) (map[int64]tables.Product, error) {
	if len(sales) == 0 {
		return map[int64]tables.Product{}, nil
	}

	seen := make(map[int64]bool, len(sales))
	ids := make([]any, 0, len(sales))
	for _, sale := range sales {
		if !seen[sale.ProductID] {
			seen[sale.ProductID] = true
			ids = append(ids, sale.ProductID)
		}
	}

	products, err := database.Query[tables.Product](rs.db).WhereIn("id", ids).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	indexed := make(map[int64]tables.Product, len(products))
	for _, product := range products {
		indexed[product.ID] = product
	}

	return indexed, nil
}
