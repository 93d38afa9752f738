package services

import (
	"context"
	"strings"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/database"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs/tables"
)

// ListingService serves the public, read-only gallery. Visually
// identical variants are collapsed to one representative listing so
// shoppers never see the same item twice.
type ListingService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewListingService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ListingService {
	return &ListingService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// ListPublic returns one representative per distinct (category, name,
// brand, color, size) tuple among in-stock products: the row with the
// minimum id. Search matches name, category, brand and color
// case-insensitively; category filters exactly. Results are cached.
//
// The grouping tuple deliberately omits the SKU, so two rows that only
// differ by SKU still collapse to one listing even though their
// canonical keys differ.
func (ls *ListingService) ListPublic(ctx context.Context, search, category string) ([]tables.Product, error) {
	if cached, ok, err := ls.cacheService.GetGallery(search, category); err == nil && ok {
		ls.logger.Debug("Gallery served from cache",
			gecho.Field("search", search),
			gecho.Field("category", category),
		)
		return cached, nil
	}

	query, args := buildGalleryQuery(search, category)

	products, err := database.RawQuery[tables.Product](ls.db, ctx, query, args...)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ls.cacheService.SetGallery(search, category, products); err != nil {
		ls.logger.Warn("Failed to cache gallery listing", gecho.Field("error", err))
	}

	return products, nil
}

// buildGalleryQuery assembles the representative-selection query. The
// grouping tuple is the raw identifying fields and deliberately omits
// the SKU; rows that only differ by SKU collapse to one listing.
func buildGalleryQuery(search, category string) (string, []any) {
	var sb strings.Builder
	args := []any{}

	sb.WriteString(`
		SELECT p.* FROM products p
		JOIN (
			SELECT MIN(id) AS id
			FROM products
			WHERE quantity > 0`)

	if search != "" {
		pattern := "%" + search + "%"
		sb.WriteString(" AND (name ILIKE ? OR category ILIKE ? OR brand ILIKE ? OR color ILIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if category != "" {
		sb.WriteString(" AND category = ?")
		args = append(args, category)
	}

	sb.WriteString(`
			GROUP BY category, name, brand, color, size
		) reps ON reps.id = p.id
		ORDER BY p.created_at DESC`)

	return sb.String(), args
}

// PublicCategories returns the distinct categories that currently have
// stock, for the gallery's filter bar
func (ls *ListingService) PublicCategories(ctx context.Context) ([]string, error) {
	categories, err := database.RawQuery[string](ls.db, ctx,
		"SELECT DISTINCT category FROM products WHERE quantity > 0 ORDER BY category")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return categories, nil
}
