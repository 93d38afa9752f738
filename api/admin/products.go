package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kubwa_closet_server/api/middleware"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
	"kubwa_closet_server/structs/tables"
)

func (ar *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("q")
	category := query.Get("category")

	// Out-of-range values are clamped by the pagination layer
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	result, err := ar.productService.AdminList(r.Context(), search, category, page, pageSize)
	if err != nil {
		ar.respondServiceError(w, err, "Unable to list products. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

// ListProductCategories returns the categories currently present in
// the catalog, sold out or not. The public gallery has its own
// in-stock-only variant.
func (ar *AdminRoutesManager) ListProductCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ar.productService.Categories(r.Context())
	if err != nil {
		ar.respondServiceError(w, err, "Unable to list categories. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

// CreateProduct accepts a multipart form: the product fields plus an
// optional "image" file
func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		ar.logger.Debug("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Expected a multipart form upload"), gecho.Send())
		return
	}

	product, err := productFromForm(r)
	if err != nil {
		ar.logger.Debug("Invalid product form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	var imageBytes []byte
	var imageName string

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		imageBytes, err = io.ReadAll(file)
		if err != nil {
			ar.logger.Warn("Failed to read uploaded image", gecho.Field("error", err))
			gecho.BadRequest(w, gecho.WithMessage("Could not read the uploaded image"), gecho.Send())
			return
		}
		imageName = header.Filename
	}

	created, err := ar.productService.Create(r.Context(), product, imageBytes, imageName)
	if err != nil {
		ar.respondServiceError(w, err, "Unable to create product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(created),
		gecho.WithMessage("Product created successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		ar.respondServiceError(w, err, "Please check the product information and try again")
		return
	}

	updated, err := ar.productService.Update(r.Context(), id, body)
	if err != nil {
		ar.respondServiceError(w, err, "Unable to update product. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(updated),
		gecho.WithMessage("Product updated successfully"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := ar.inventoryService.Delete(r.Context(), id); err != nil {
		ar.respondServiceError(w, err, "Unable to delete product. Please try again")
		return
	}

	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		ar.logger.Info("Product deleted by admin",
			gecho.Field("product_id", id),
			gecho.Field("admin", claims.Username),
		)
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.Send(),
	)
}

func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// productFromForm assembles a product row from multipart form fields.
// Field-level validation happens in the service; this only parses.
func productFromForm(r *http.Request) (*tables.Product, error) {
	bp, err := decimal.NewFromString(r.FormValue("bp"))
	if err != nil {
		return nil, lib.ErrValidation
	}
	sp, err := decimal.NewFromString(r.FormValue("sp"))
	if err != nil {
		return nil, lib.ErrValidation
	}

	quantity := 0
	if raw := r.FormValue("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return nil, lib.ErrValidation
		}
	}

	return &tables.Product{
		Name:     r.FormValue("name"),
		Category: tables.Category(r.FormValue("category")),
		Brand:    r.FormValue("brand"),
		Color:    r.FormValue("color"),
		Size:     r.FormValue("size"),
		SKU:      r.FormValue("sku"),
		BP:       bp,
		SP:       sp,
		Quantity: quantity,
	}, nil
}
