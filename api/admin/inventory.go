package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
)

func (ar *AdminRoutesManager) SellProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SellRequest](r)
	if err != nil {
		ar.respondServiceError(w, err, "Please check the sale information and try again")
		return
	}

	sale, err := ar.inventoryService.Sell(r.Context(), id, body.SellingPrice, body.Quantity)
	if err != nil {
		ar.respondServiceError(w, err, "Unable to record sale. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(sale),
		gecho.WithMessage("Sale recorded successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) RestockProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.RestockRequest](r)
	if err != nil {
		ar.respondServiceError(w, err, "Please check the restock information and try again")
		return
	}

	if err := ar.inventoryService.Restock(r.Context(), id, body.Quantity); err != nil {
		ar.respondServiceError(w, err, "Unable to restock product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product restocked successfully"),
		gecho.Send(),
	)
}
