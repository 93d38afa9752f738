package reports

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"kubwa_closet_server/services"
)

// ReportRoutesManager serves the profit reports. It registers relative
// paths; the caller mounts it inside the authenticated admin subtree.
type ReportRoutesManager struct {
	logger        *gecho.Logger
	reportService *services.ReportService
}

func NewReportRoutesManager(
	logger *gecho.Logger,
	reportService *services.ReportService,
) *ReportRoutesManager {
	return &ReportRoutesManager{
		logger:        logger,
		reportService: reportService,
	}
}

func (rrm *ReportRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/reports", rrm.GetReport)
	r.Get("/reports/export.csv", rrm.ExportCSV)
}
