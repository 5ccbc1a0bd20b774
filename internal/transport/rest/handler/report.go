package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"kuisioner/internal/service"
	"kuisioner/internal/transport/rest/middleware"
)

// ReportHandler handles report, export and share endpoints
type ReportHandler struct {
	questionnaireSvc *service.QuestionnaireService
	reportSvc        *service.ReportService
	exportSvc        *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(questionnaireSvc *service.QuestionnaireService, reportSvc *service.ReportService, exportSvc *service.ExportService) *ReportHandler {
	return &ReportHandler{
		questionnaireSvc: questionnaireSvc,
		reportSvc:        reportSvc,
		exportSvc:        exportSvc,
	}
}

// Generate handles GET/POST /v1/questionnaires/{questionnaireId}/report
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if _, _, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}

	report, err := h.reportSvc.Generate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ExportCSV handles GET /v1/questionnaires/{questionnaireId}/export
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if _, _, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="responses_%s.csv"`, id))
	if err := h.exportSvc.WriteCSV(r.Context(), w, id); err != nil {
		// Headers are gone; the truncated body is the best signal left.
		return
	}
}

// ShareQR handles GET /v1/questionnaires/{questionnaireId}/qr
func (h *ReportHandler) ShareQR(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if _, _, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}

	png, err := h.reportSvc.ShareQR(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
