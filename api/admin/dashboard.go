package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) GetDashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := ar.inventoryService.Metrics(r.Context())
	if err != nil {
		ar.respondServiceError(w, err, "Unable to load the dashboard. Please try again")
		return
	}

	gecho.Success(w,
		gecho.WithData(metrics),
		gecho.Send(),
	)
}
