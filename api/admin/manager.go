package admin

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"kubwa_closet_server/api/middleware"
	"kubwa_closet_server/api/reports"
	"kubwa_closet_server/lib"
	"kubwa_closet_server/services"
)

type AdminRoutesManager struct {
	logger           *gecho.Logger
	productService   *services.ProductService
	inventoryService *services.InventoryService
	reportRoutes     *reports.ReportRoutesManager
	mw               *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	inventoryService *services.InventoryService,
	reportRoutes *reports.ReportRoutesManager,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:           logger,
		productService:   productService,
		inventoryService: inventoryService,
		reportRoutes:     reportRoutes,
		mw:               mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)

		r.Get("/dashboard", ar.GetDashboard)

		r.Get("/products", ar.ListProducts)
		r.Post("/products", ar.CreateProduct)
		r.Get("/products/categories", ar.ListProductCategories)
		r.Put("/products/{id}", ar.UpdateProduct)
		r.Delete("/products/{id}", ar.DeleteProduct)

		r.Post("/products/{id}/sell", ar.SellProduct)
		r.Post("/products/{id}/restock", ar.RestockProduct)

		ar.reportRoutes.RegisterRoutes(r)
	})
}

// respondServiceError translates domain errors into HTTP responses.
// Validation details are safe to echo; everything else gets the
// fallback message.
func (ar *AdminRoutesManager) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *lib.ValidationError

	switch {
	case errors.As(err, &ve):
		gecho.BadRequest(w, gecho.WithMessage(ve.Error()), gecho.WithData(ve.Errors), gecho.Send())
	case lib.IsValidation(err):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case lib.IsNotFound(err):
		gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
	case lib.IsConflict(err):
		gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		ar.logger.Error("Admin request failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage(fallback), gecho.Send())
	}
}
