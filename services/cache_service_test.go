package services

import (
	"encoding/json"
	"testing"

	"kubwa_closet_server/structs/tables"
)

func TestDecodeGallery(t *testing.T) {
	// A cached empty listing round-trips through JSON as null; it must
	// decode to an empty slice, not nil, so a present key never reads
	// like a cache miss.
	for _, payload := range []string{"null", "[]"} {
		products, err := decodeGallery(payload)
		if err != nil {
			t.Fatalf("decodeGallery(%q) failed: %v", payload, err)
		}
		if products == nil {
			t.Errorf("decodeGallery(%q) returned nil, want empty slice", payload)
		}
		if len(products) != 0 {
			t.Errorf("decodeGallery(%q) returned %d products, want 0", payload, len(products))
		}
	}
}

func TestDecodeGalleryRoundTrip(t *testing.T) {
	stored := []tables.Product{
		{ID: 1, Name: "Tote", Category: "bags", Quantity: 2},
		{ID: 2, Name: "Denim Jacket", Category: "clothes", Brand: "Levis", Quantity: 1},
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	products, err := decodeGallery(string(payload))
	if err != nil {
		t.Fatalf("decodeGallery() failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Name != "Tote" || products[1].Brand != "Levis" {
		t.Errorf("decoded products do not match stored: %+v", products)
	}
}

func TestDecodeGalleryRejectsInvalidPayload(t *testing.T) {
	if _, err := decodeGallery("{not json"); err == nil {
		t.Error("invalid payload should return an error")
	}
}
