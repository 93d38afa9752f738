package gallery

import (
	"net/http"
	"path"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// ServeUpload streams a stored product photo. The wildcard is cleaned
// and confined to the upload directory; traversal attempts 404.
func (grm *GalleryRoutesManager) ServeUpload(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")

	cleaned := path.Clean("/" + rel)
	if strings.Contains(cleaned, "..") {
		gecho.NotFound(w, gecho.Send())
		return
	}
	cleaned = strings.TrimPrefix(cleaned, "/")

	// Only the two known variants are exposed
	if !strings.HasPrefix(cleaned, "original/") && !strings.HasPrefix(cleaned, "web/") {
		gecho.NotFound(w, gecho.Send())
		return
	}

	http.ServeFile(w, r, grm.imageService.Resolve(cleaned))
}
