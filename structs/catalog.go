package structs

import (
	"github.com/shopspring/decimal"
)

// SellRequest records a sale of an existing product. The selling price
// is taken from the request (the admin may haggle below or above the
// listed SP); the buying price is snapshotted from the product row.
type SellRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
}

type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// UpdateProductRequest carries a partial product edit; nil fields are
// left untouched. Editing identifying fields regroups the product in
// the public gallery because the canonical key is derived, not stored.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category,omitempty" validate:"omitempty,oneof=Shoes Clothes Bags Accessories"`
	Brand    *string          `json:"brand,omitempty" validate:"omitempty,max=100"`
	Color    *string          `json:"color,omitempty" validate:"omitempty,max=50"`
	Size     *string          `json:"size,omitempty" validate:"omitempty,max=50"`
	SKU      *string          `json:"sku,omitempty" validate:"omitempty,max=100"`
	BP       *decimal.Decimal `json:"bp,omitempty"`
	SP       *decimal.Decimal `json:"sp,omitempty"`
}
