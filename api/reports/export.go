package reports

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (rrm *ReportRoutesManager) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := rrm.reportService.ExportCSV(r.Context(), queryFromRequest(r))
	if err != nil {
		rrm.logger.Error("Failed to export report", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to export the report. Please try again"), gecho.Send())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
