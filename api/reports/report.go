package reports

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/structs"
)

// queryFromRequest reads the report parameters. Unknown periods and
// unparseable custom dates resolve to the weekly window downstream.
func queryFromRequest(r *http.Request) *structs.ReportQuery {
	q := r.URL.Query()

	period := structs.ReportPeriod(q.Get("period"))
	if period == "" {
		period = structs.PeriodWeek
	}

	return &structs.ReportQuery{
		Period:   period,
		FromDate: q.Get("from"),
		ToDate:   q.Get("to"),
	}
}

func (rrm *ReportRoutesManager) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := rrm.reportService.ComputeReport(r.Context(), queryFromRequest(r))
	if err != nil {
		rrm.logger.Error("Failed to compute report", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to build the report. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(report),
		gecho.Send(),
	)
}
