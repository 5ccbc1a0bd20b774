package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"kuisioner/internal/service"
	"kuisioner/internal/transport/rest/middleware"
)

// AnalyticsHandler handles the analytics endpoints
type AnalyticsHandler struct {
	questionnaireSvc *service.QuestionnaireService
	analyticsSvc     *service.AnalyticsService
	exportSvc        *service.ExportService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(questionnaireSvc *service.QuestionnaireService, analyticsSvc *service.AnalyticsService, exportSvc *service.ExportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		questionnaireSvc: questionnaireSvc,
		analyticsSvc:     analyticsSvc,
		exportSvc:        exportSvc,
	}
}

// Get handles GET /v1/questionnaires/{questionnaireId}/analytics
//
// Optional query parameters topN, topics and topicWords override the
// defaults; overridden runs bypass the cache.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if _, _, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}

	params := service.DefaultParams()
	if v := queryInt(r, "topN"); v != 0 {
		params.TopN = v
	}
	if v := queryInt(r, "topics"); v != 0 {
		params.NTopics = v
	}
	if v := queryInt(r, "topicWords"); v != 0 {
		params.NTopicWords = v
	}

	bundle, err := h.analyticsSvc.Compute(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

// QuestionBreakdown handles GET /v1/questionnaires/{questionnaireId}/questions/{questionId}/breakdown
func (h *AnalyticsHandler) QuestionBreakdown(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if _, _, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), vars["questionnaireId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	counts, err := h.exportSvc.QuestionBreakdown(r.Context(), vars["questionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": counts})
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
