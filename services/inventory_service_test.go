package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"

	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

// The nil database handle makes any accidental query panic; these
// tests exercise the paths that must never touch the database.
func newTestInventoryService(threshold int) *InventoryService {
	cfg := &structs.Config{
		Email: &structs.EmailConfig{LowStockThreshold: threshold},
	}
	logger := gecho.NewDefaultLogger()
	return NewInventoryService(logger, cfg, nil, nil, NewEmailService(logger, cfg), nil)
}

func TestSellRejectsInvalidInput(t *testing.T) {
	svc := newTestInventoryService(3)

	tests := []struct {
		name     string
		price    decimal.Decimal
		quantity int
	}{
		{"zero quantity", decimal.RequireFromString("100"), 0},
		{"negative quantity", decimal.RequireFromString("100"), -1},
		{"zero price", decimal.Zero, 1},
		{"negative price", decimal.RequireFromString("-5"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Sell(context.Background(), 1, tt.price, tt.quantity)
			if !errors.Is(err, lib.ErrValidation) {
				t.Errorf("Sell() error = %v, want validation error", err)
			}
		})
	}
}

func TestRestockRejectsInvalidQuantity(t *testing.T) {
	svc := newTestInventoryService(3)

	for _, quantity := range []int{0, -2} {
		if err := svc.Restock(context.Background(), 1, quantity); !errors.Is(err, lib.ErrValidation) {
			t.Errorf("Restock(%d) error = %v, want validation error", quantity, err)
		}
	}
}

func TestMaybeAlertLowStockUsesCommittedCount(t *testing.T) {
	// The alert decision works off the remaining count the sale already
	// computed. A re-read here would panic on the nil database handle.
	svc := newTestInventoryService(3)
	product := &tables.Product{ID: 1, Name: "Tote", Category: "bags", Quantity: 10}

	svc.maybeAlertLowStock(product, 4)
	svc.maybeAlertLowStock(product, 3)
	svc.maybeAlertLowStock(product, 0)
}

func TestSendLowStockAlertSkipsWhenUnconfigured(t *testing.T) {
	// No owner address and no API key; the alert must return without
	// attempting delivery.
	svc := newTestInventoryService(3)
	product := &tables.Product{ID: 1, Name: "Tote", Category: "bags"}

	svc.emailService.SendLowStockAlert(product, 1)
}
