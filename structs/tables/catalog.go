package tables

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed set of product categories the shop sells.
type Category string

const (
	CategoryShoes       Category = "Shoes"
	CategoryClothes     Category = "Clothes"
	CategoryBags        Category = "Bags"
	CategoryAccessories Category = "Accessories"
)

// Categories lists every valid category, in display order.
var Categories = []Category{CategoryShoes, CategoryClothes, CategoryBags, CategoryAccessories}

func (c Category) Valid() bool {
	switch c {
	case CategoryShoes, CategoryClothes, CategoryBags, CategoryAccessories:
		return true
	}
	return false
}

type Product struct {
	tableName struct{} `bun:"table:products,alias:p"`

	ID       int64    `bun:"id,pk,autoincrement" json:"id"`
	Name     string   `bun:"name,notnull" json:"name"`
	Category Category `bun:"category,notnull" json:"category"`
	Brand    string   `bun:"brand" json:"brand,omitempty"`
	Color    string   `bun:"color" json:"color,omitempty"`
	Size     string   `bun:"size" json:"size,omitempty"`
	SKU      string   `bun:"sku,unique,nullzero" json:"sku,omitempty"`

	// Fixed-point prices, 2 decimal places. BP is what the shop paid,
	// SP is the asking price; sales snapshot both.
	BP decimal.Decimal `bun:"bp,notnull,type:numeric(10,2)" json:"bp"`
	SP decimal.Decimal `bun:"sp,notnull,type:numeric(10,2)" json:"sp"`

	Quantity int `bun:"quantity,notnull,default:0" json:"quantity"` // CHECK (quantity >= 0)

	ImagePathOriginal string `bun:"image_path_original" json:"image_path_original,omitempty"`
	ImagePathWeb      string `bun:"image_path_web" json:"image_path_web,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CanonicalKey derives the variant identity used to group visually
// identical listings. A SKU, when present, is authoritative; otherwise
// the key is a normalized composite of the identifying fields. The key
// is never stored, so edits to any identifying field regroup the
// product on the next read without a migration.
func (p *Product) CanonicalKey() string {
	if p.SKU != "" {
		return strings.ToLower(p.SKU)
	}

	parts := []string{string(p.Category), p.Name, p.Brand, p.Color, p.Size}
	key := strings.ToLower(strings.Join(parts, "|"))

	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '|' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sale is an append-only record of a completed sale. Prices are
// snapshotted at the moment of the transaction so historical reports
// stay immutable as the catalog changes.
type Sale struct {
	tableName struct{} `bun:"table:sales,alias:s"`

	ID        int64 `bun:"id,pk,autoincrement" json:"id"`
	ProductID int64 `bun:"product_id,notnull" json:"product_id"` // FK ON DELETE RESTRICT
	Quantity  int   `bun:"quantity,notnull" json:"quantity"`     // CHECK (quantity > 0)

	SPAtSale decimal.Decimal `bun:"sp_at_sale,notnull,type:numeric(10,2)" json:"sp_at_sale"`
	BPAtSale decimal.Decimal `bun:"bp_at_sale,notnull,type:numeric(10,2)" json:"bp_at_sale"`
	Profit   decimal.Decimal `bun:"profit,notnull,type:numeric(10,2)" json:"profit"` // (sp_at_sale - bp_at_sale) * quantity

	SoldAt time.Time `bun:"sold_at,notnull,default:current_timestamp" json:"sold_at"`
}

// SaleProfit computes the profit snapshot stored on a Sale row.
func SaleProfit(sp, bp decimal.Decimal, quantity int) decimal.Decimal {
	return sp.Sub(bp).Mul(decimal.NewFromInt(int64(quantity)))
}
