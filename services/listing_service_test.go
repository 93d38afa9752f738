package services

import (
	"strings"
	"testing"

	"kubwa_closet_server/structs/tables"
)

func TestBuildGalleryQuery(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		wantArgs int
	}{
		{"no filters", "", "", 0},
		{"search only", "denim", "", 4},
		{"category only", "", "bags", 1},
		{"search and category", "denim", "clothes", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildGalleryQuery(tt.search, tt.category)

			if !strings.Contains(query, "GROUP BY category, name, brand, color, size") {
				t.Errorf("query should group by the identifying tuple:\n%s", query)
			}
			if strings.Contains(query, "sku") {
				t.Errorf("grouping must not involve the sku:\n%s", query)
			}
			if !strings.Contains(query, "quantity > 0") {
				t.Errorf("query should exclude out-of-stock rows:\n%s", query)
			}
			if !strings.Contains(query, "MIN(id)") {
				t.Errorf("query should pick the minimum id as representative:\n%s", query)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d: %v", len(args), tt.wantArgs, args)
			}
		})
	}
}

func TestBuildGalleryQueryFilterArgs(t *testing.T) {
	query, args := buildGalleryQuery("denim", "clothes")

	if !strings.Contains(query, "ILIKE") {
		t.Errorf("search filter should be case-insensitive:\n%s", query)
	}
	for _, arg := range args[:4] {
		if arg != "%denim%" {
			t.Errorf("search arg = %v, want %%denim%%", arg)
		}
	}
	if args[4] != "clothes" {
		t.Errorf("category arg = %v, want clothes", args[4])
	}
}

func TestGalleryGroupingCollapsesSKUVariants(t *testing.T) {
	// Two rows that only differ by SKU have distinct canonical keys, yet
	// the gallery grouping tuple omits the SKU so they surface as one
	// listing.
	first := tables.Product{Name: "Denim Jacket", Category: "clothes", Brand: "Levis", Color: "blue", Size: "M", SKU: "SKU-001"}
	second := first
	second.SKU = "SKU-002"

	if first.CanonicalKey() == second.CanonicalKey() {
		t.Error("rows with different SKUs should have distinct canonical keys")
	}

	query, _ := buildGalleryQuery("", "")
	groupStart := strings.Index(query, "GROUP BY")
	if groupStart < 0 {
		t.Fatalf("query has no GROUP BY clause:\n%s", query)
	}
	grouping := query[groupStart:strings.Index(query, ") reps")]
	if strings.Contains(grouping, "sku") {
		t.Errorf("grouping tuple must omit the sku: %s", grouping)
	}
}
