package gallery

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"kubwa_closet_server/services"
)

// GalleryRoutesManager serves the public storefront: the deduplicated
// product gallery and the stored product photos. No authentication.
type GalleryRoutesManager struct {
	logger         *gecho.Logger
	listingService *services.ListingService
	imageService   *services.ImageService
}

func NewGalleryRoutesManager(
	logger *gecho.Logger,
	listingService *services.ListingService,
	imageService *services.ImageService,
) *GalleryRoutesManager {
	return &GalleryRoutesManager{
		logger:         logger,
		listingService: listingService,
		imageService:   imageService,
	}
}

func (grm *GalleryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/", grm.ListGallery)
	r.Get("/categories", grm.ListCategories)
	r.Get("/uploads/*", grm.ServeUpload)
}
