package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"kuisioner/internal/service"
)

// SurveyHandler handles the public respondent endpoints
type SurveyHandler struct {
	questionnaireSvc *service.QuestionnaireService
	responseSvc      *service.ResponseService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(questionnaireSvc *service.QuestionnaireService, responseSvc *service.ResponseService) *SurveyHandler {
	return &SurveyHandler{
		questionnaireSvc: questionnaireSvc,
		responseSvc:      responseSvc,
	}
}

// SubmitRequest is the request body for submitting responses. Answers are
// keyed by question id.
type SubmitRequest struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Answers map[string]string `json:"answers"`
}

// GetForm handles GET /v1/surveys/{questionnaireId}
func (h *SurveyHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	q, questions, err := h.questionnaireSvc.PublicForm(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questionnaire": q,
		"questions":     questions,
	})
}

// Submit handles POST /v1/surveys/{questionnaireId}/responses
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.responseSvc.Submit(r.Context(), id, req.Name, req.Email, req.Answers); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}
