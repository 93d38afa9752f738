package services

import (
	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/database"
	"kubwa_closet_server/structs"
)

type ServiceManager struct {
	AuthService      *AuthService
	CacheService     *CacheService
	EmailService     *EmailService
	HealthService    *HealthService
	ImageService     *ImageService
	ProductService   *ProductService
	InventoryService *InventoryService
	ListingService   *ListingService
	ReportService    *ReportService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	authService := NewAuthService(cfg, logger, db)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	imageService := NewImageService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService, imageService)
	inventoryService := NewInventoryService(logger, cfg, db, cacheService, emailService, imageService)
	listingService := NewListingService(logger, db, cacheService)
	reportService := NewReportService(logger, db)

	return &ServiceManager{
		AuthService:      authService,
		CacheService:     cacheService,
		EmailService:     emailService,
		HealthService:    healthService,
		ImageService:     imageService,
		ProductService:   productService,
		InventoryService: inventoryService,
		ListingService:   listingService,
		ReportService:    reportService,
	}
}
