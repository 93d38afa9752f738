package api

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"kubwa_closet_server/api/admin"
	"kubwa_closet_server/api/auth"
	"kubwa_closet_server/api/gallery"
	"kubwa_closet_server/api/health"
	"kubwa_closet_server/api/middleware"
	"kubwa_closet_server/api/reports"
	"kubwa_closet_server/database"
	"kubwa_closet_server/services"
	"kubwa_closet_server/structs"
)

type routerManager struct {
	galleryRoutes *gallery.GalleryRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	adminRoutes   *admin.AdminRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	mw *middleware.Middleware,
) *routerManager {
	svc := services.NewServiceManager(logger, cfg, db)

	reportRoutes := reports.NewReportRoutesManager(logger, svc.ReportService)

	return &routerManager{
		galleryRoutes: gallery.NewGalleryRoutesManager(logger, svc.ListingService, svc.ImageService),
		healthRoutes:  health.NewHealthRoutesManager(svc.HealthService),
		authRoutes:    auth.NewAuthRoutesManager(logger, svc.AuthService),
		adminRoutes:   admin.NewAdminRoutesManager(logger, svc.ProductService, svc.InventoryService, reportRoutes, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.galleryRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
