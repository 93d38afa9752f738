package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/database"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
	imageService *ImageService
}

func NewProductService(
	logger *gecho.Logger,
	db *database.DB,
	cacheService *CacheService,
	imageService *ImageService,
) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
		imageService: imageService,
	}
}

// Create validates and inserts a new product. When image bytes are
// provided they are run through the image processor first; the product
// row stores both resulting paths.
func (ps *ProductService) Create(ctx context.Context, product *tables.Product, image []byte, imageName string) (*tables.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if len(image) > 0 {
		originalPath, webPath, err := ps.imageService.Process(image, imageName)
		if err != nil {
			ps.logger.Error("Failed to store product image", gecho.Field("error", err))
			return nil, fmt.Errorf("%w: could not store image", lib.ErrStorage)
		}
		product.ImagePathOriginal = originalPath
		product.ImagePathWeb = webPath
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	inserted, err := database.Create(ps.db, ctx, product)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsConflict(mappedErr) {
			ps.logger.Warn("Product creation failed, duplicate SKU",
				gecho.Field("sku", product.SKU),
			)
		} else {
			ps.logger.Error("Database error during product creation",
				gecho.Field("error", mappedErr),
				gecho.Field("name", product.Name),
			)
		}
		// The row never landed; don't leave orphaned files behind
		ps.imageService.Remove(product.ImagePathOriginal, product.ImagePathWeb)
		return nil, mappedErr
	}

	ps.invalidateGallery()

	ps.logger.Info("Product created",
		gecho.Field("product_id", inserted.ID),
		gecho.Field("name", inserted.Name),
		gecho.Field("quantity", inserted.Quantity),
	)

	return inserted, nil
}

// Update applies a partial edit to a product. Editing identifying fields
// regroups the product in the public gallery on the next read.
func (ps *ProductService) Update(ctx context.Context, id int64, req *structs.UpdateProductRequest) (*tables.Product, error) {
	updates := map[string]any{
		"updated_at": time.Now(),
	}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		if !tables.Category(*req.Category).Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", lib.ErrValidation, *req.Category)
		}
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.BP != nil {
		if !req.BP.IsPositive() {
			return nil, fmt.Errorf("%w: buying price must be positive", lib.ErrValidation)
		}
		updates["bp"] = *req.BP
	}
	if req.SP != nil {
		if !req.SP.IsPositive() {
			return nil, fmt.Errorf("%w: selling price must be positive", lib.ErrValidation)
		}
		updates["sp"] = *req.SP
	}

	results, err := database.Query[tables.Product](ps.db).Where("id", id).UpdateReturning(ctx, updates)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		ps.logger.Error("Database error during product update",
			gecho.Field("error", mappedErr),
			gecho.Field("product_id", id),
		)
		return nil, mappedErr
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateGallery()

	ps.logger.Info("Product updated", gecho.Field("product_id", id))

	return &results[0], nil
}

// GetByID fetches a single product
func (ps *ProductService) GetByID(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := database.FindByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// AdminList returns a page of the full (non-deduplicated) catalog for
// the admin views, newest edits first, with optional search and
// category filter
func (ps *ProductService) AdminList(ctx context.Context, search, category string, page, pageSize int) (*database.PaginationResult[tables.Product], error) {
	query := database.Query[tables.Product](ps.db)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.WhereRaw("(name ILIKE ? OR brand ILIKE ? OR sku ILIKE ?)", pattern, pattern, pattern)
	}
	if category != "" {
		query = query.Where("category", category)
	}

	// Search patterns hit unindexed ILIKE scans; bound them
	result, err := database.Paginate(query.OrderBy("updated_at", database.DESC).Timeout(10*time.Second), ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// Categories returns the distinct categories present in the catalog
func (ps *ProductService) Categories(ctx context.Context) ([]string, error) {
	rows, err := database.RawQuery[string](ps.db, ctx,
		"SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// invalidateGallery drops cached public listings after any mutation.
// Failures are logged only; the cache self-heals on TTL expiry.
func (ps *ProductService) invalidateGallery() {
	if err := ps.cacheService.InvalidateGallery(); err != nil {
		ps.logger.Warn("Failed to invalidate gallery cache", gecho.Field("error", err))
	}
}

// validateProduct enforces the invariants a product row must satisfy
// before it ever reaches the database
func validateProduct(p *tables.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", lib.ErrValidation)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", lib.ErrValidation, p.Category)
	}
	if !p.BP.IsPositive() {
		return fmt.Errorf("%w: buying price must be positive", lib.ErrValidation)
	}
	if !p.SP.IsPositive() {
		return fmt.Errorf("%w: selling price must be positive", lib.ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", lib.ErrValidation)
	}
	return nil
}
