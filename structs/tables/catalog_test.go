package tables

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name: "sku overrides composite fields",
			product: Product{
				Name:     "Denim Jacket",
				Category: CategoryClothes,
				Brand:    "Levi's",
				SKU:      "SKU-001",
			},
			want: "sku-001",
		},
		{
			name: "composite key from identifying fields",
			product: Product{
				Name:     "Denim Jacket",
				Category: CategoryClothes,
				Brand:    "Levi's",
				Color:    "Blue",
				Size:     "M",
			},
			want: "clothes|denimjacket|levis|blue|m",
		},
		{
			name: "punctuation and spacing do not split variants",
			product: Product{
				Name:     "denim   jacket!",
				Category: CategoryClothes,
				Brand:    "LEVIS",
				Color:    "blue",
				Size:     "m",
			},
			want: "clothes|denimjacket|levis|blue|m",
		},
		{
			name: "empty optional fields keep their separator slot",
			product: Product{
				Name:     "Tote",
				Category: CategoryBags,
			},
			want: "bags|tote|||",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.CanonicalKey(); got != tt.want {
				t.Errorf("CanonicalKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalKeyDistinguishesSizes(t *testing.T) {
	a := Product{Name: "Runner", Category: CategoryShoes, Brand: "Nike", Color: "White", Size: "42"}
	b := a
	b.Size = "43"

	if a.CanonicalKey() == b.CanonicalKey() {
		t.Errorf("different sizes should produce different keys, both got %q", a.CanonicalKey())
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("Hats").Valid() {
		t.Error("unknown category should not be valid")
	}
	if Category("").Valid() {
		t.Error("empty category should not be valid")
	}
}

func TestSaleProfit(t *testing.T) {
	tests := []struct {
		name     string
		sp, bp   string
		quantity int
		want     string
	}{
		{"simple margin", "1500", "1000", 3, "1500"},
		{"single unit", "25.50", "20.00", 1, "5.5"},
		{"sold below cost", "800", "1000", 2, "-400"},
		{"zero quantity", "100", "50", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := decimal.RequireFromString(tt.sp)
			bp := decimal.RequireFromString(tt.bp)
			want := decimal.RequireFromString(tt.want)

			if got := SaleProfit(sp, bp, tt.quantity); !got.Equal(want) {
				t.Errorf("SaleProfit(%s, %s, %d) = %s, want %s", tt.sp, tt.bp, tt.quantity, got, want)
			}
		})
	}
}
