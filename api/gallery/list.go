package gallery

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListGallery returns the public storefront listing. Each entry is one
// representative of a group of identical in-stock variants.
func (grm *GalleryRoutesManager) ListGallery(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	products, err := grm.listingService.ListPublic(r.Context(), search, category)
	if err != nil {
		grm.logger.Error("Failed to list gallery", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load the gallery. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (grm *GalleryRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := grm.listingService.PublicCategories(r.Context())
	if err != nil {
		grm.logger.Error("Failed to list categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load categories. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}
