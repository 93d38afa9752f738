package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"kubwa_closet_server/database"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

// InventoryService owns the stock lifecycle: selling, restocking and
// retiring products. Every mutation runs inside a single transaction so
// stock counts and sale records never drift apart.
type InventoryService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
	emailService *EmailService
	imageService *ImageService
}

func NewInventoryService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	cacheService *CacheService,
	emailService *EmailService,
	imageService *ImageService,
) *InventoryService {
	return &InventoryService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
		emailService: emailService,
		imageService: imageService,
	}
}

// Sell records a sale of quantity units at sellingPrice. The stock
// decrement is a conditional update guarded by quantity >= sold amount,
// so two concurrent sales of the last unit cannot both succeed. The
// sale row snapshots both prices and the profit at the moment of sale.
func (is *InventoryService) Sell(ctx context.Context, productID int64, sellingPrice decimal.Decimal, quantity int) (sale *tables.Sale, err error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", lib.ErrValidation)
	}
	if !sellingPrice.IsPositive() {
		return nil, fmt.Errorf("%w: selling price must be positive", lib.ErrValidation)
	}

	tx, err := is.db.BeginTx(ctx, nil)
	if err != nil {
		is.logger.Error("Failed to begin transaction", gecho.Field("error", err))
		return nil, lib.MapPgError(err)
	}

	defer func() {
		if p := recover(); p != nil {
			is.logger.Error("Panic recovered during sale",
				gecho.Field("panic_value", p),
				gecho.Field("stack_trace", string(debug.Stack())),
			)
			tx.Rollback()
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	// Locking read; the bp snapshot must match the row the decrement hits
	product, err := database.QueryTx[tables.Product](tx).Where("id", productID).ForUpdate().First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	now := time.Now()

	// Conditional decrement; zero rows means someone else took the stock
	res, err := tx.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("quantity = quantity - ?", quantity).
		Set("updated_at = ?", now).
		Where("id = ?", productID).
		Where("quantity >= ?", quantity).
		Exec(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		err = fmt.Errorf("%w: %d requested, %d available", lib.ErrInsufficientStock, quantity, product.Quantity)
		return nil, err
	}

	sale = &tables.Sale{
		ProductID: productID,
		Quantity:  quantity,
		SPAtSale:  sellingPrice,
		BPAtSale:  product.BP,
		Profit:    tables.SaleProfit(sellingPrice, product.BP, quantity),
		SoldAt:    now,
	}

	if _, err = tx.NewInsert().Model(sale).Returning("*").Exec(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}

	// Side effects only after the sale is durable; a failed commit must
	// not invalidate caches or alert on a sale that never happened
	if err = tx.Commit(); err != nil {
		return nil, lib.MapPgError(err)
	}

	is.logger.Info("Sale recorded",
		gecho.Field("product_id", productID),
		gecho.Field("quantity", quantity),
		gecho.Field("profit", sale.Profit.String()),
	)

	is.invalidateGallery()
	is.maybeAlertLowStock(product, product.Quantity-quantity)

	return sale, nil
}

// Restock adds quantity units to a product's stock
func (is *InventoryService) Restock(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", lib.ErrValidation)
	}

	rowsAffected, err := database.RawExec(is.db, ctx,
		"UPDATE products SET quantity = quantity + ?, updated_at = ? WHERE id = ?",
		quantity, time.Now(), productID)
	if err != nil {
		return lib.MapPgError(err)
	}
	if rowsAffected == 0 {
		return lib.ErrNotFound
	}

	is.logger.Info("Product restocked",
		gecho.Field("product_id", productID),
		gecho.Field("quantity", quantity),
	)

	is.invalidateGallery()

	return nil
}

// Delete retires a product. Products with recorded sales cannot be
// deleted; history must stay intact for reporting. The foreign key is
// the authoritative guard, the pre-check just gives a cleaner error.
func (is *InventoryService) Delete(ctx context.Context, productID int64) error {
	product, err := database.Query[tables.Product](is.db).Where("id", productID).First(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if product == nil {
		return lib.ErrNotFound
	}

	hasSales, err := database.Query[tables.Sale](is.db).Where("product_id", productID).Exists(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if hasSales {
		return fmt.Errorf("%w: product has recorded sales", lib.ErrConflict)
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*tables.Product)(nil)).
			Where("id = ?", productID).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Row is gone; image files are cleaned up best-effort after commit
	is.imageService.Remove(product.ImagePathOriginal, product.ImagePathWeb)

	is.logger.Info("Product deleted", gecho.Field("product_id", productID))

	is.invalidateGallery()

	return nil
}

// Metrics assembles the admin dashboard summary. The 7/30-day profit
// figures sum the stored per-sale profit snapshots.
func (is *InventoryService) Metrics(ctx context.Context) (*structs.DashboardMetrics, error) {
	type stockTotals struct {
		TotalStock int             `bun:"total_stock"`
		NetWorthBP decimal.Decimal `bun:"net_worth_bp"`
		NetWorthSP decimal.Decimal `bun:"net_worth_sp"`
	}

	totals, err := database.RawQueryOne[stockTotals](is.db, ctx, `
		SELECT
			COALESCE(SUM(quantity), 0) AS total_stock,
			COALESCE(SUM(bp * quantity), 0) AS net_worth_bp,
			COALESCE(SUM(sp * quantity), 0) AS net_worth_sp
		FROM products`)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	now := time.Now()

	weeklyProfit, err := is.profitSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	monthlyProfit, err := is.profitSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	recentSales, err := database.Query[tables.Sale](is.db).
		OrderBy("sold_at", database.DESC).
		Limit(5).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	metrics := &structs.DashboardMetrics{
		WeeklyProfit:  weeklyProfit,
		MonthlyProfit: monthlyProfit,
		RecentSales:   recentSales,
	}
	if totals != nil {
		metrics.TotalStock = totals.TotalStock
		metrics.NetWorthBP = totals.NetWorthBP
		metrics.NetWorthSP = totals.NetWorthSP
	}

	return metrics, nil
}

func (is *InventoryService) profitSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	result, err := database.RawQueryOne[decimal.Decimal](is.db, ctx,
		"SELECT COALESCE(SUM(profit), 0) FROM sales WHERE sold_at >= ?", since)
	if err != nil {
		return decimal.Zero, lib.MapPgError(err)
	}
	if result == nil {
		return decimal.Zero, nil
	}
	return *result, nil
}

// maybeAlertLowStock fires a low-stock email when the post-sale
// quantity is at or below the configured threshold. The caller passes
// the committed remaining count; the product row is not re-read.
func (is *InventoryService) maybeAlertLowStock(product *tables.Product, remaining int) {
	if remaining > is.cfg.Email.LowStockThreshold {
		return
	}

	go is.emailService.SendLowStockAlert(product, remaining)
}

func (is *InventoryService) invalidateGallery() {
	if err := is.cacheService.InvalidateGallery(); err != nil {
		is.logger.Warn("Failed to invalidate gallery cache", gecho.Field("error", err))
	}
}
