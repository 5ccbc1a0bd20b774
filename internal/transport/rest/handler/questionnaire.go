package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"kuisioner/internal/model"
	"kuisioner/internal/service"
	"kuisioner/internal/transport/rest/middleware"
)

// QuestionnaireHandler handles questionnaire management endpoints
type QuestionnaireHandler struct {
	questionnaireSvc *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireSvc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireSvc: questionnaireSvc}
}

// CreateQuestionnaireRequest is the request body for creating a questionnaire
type CreateQuestionnaireRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Access      model.Access `json:"access"`
}

// AddQuestionRequest is the request body for adding a question
type AddQuestionRequest struct {
	Text     string             `json:"text"`
	Type     model.QuestionType `json:"type"`
	Options  []string           `json:"options"`
	Required bool               `json:"required"`
}

// Create handles POST /v1/questionnaires
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.questionnaireSvc.Create(r.Context(), middleware.GetUserID(r.Context()), req.Title, req.Description, req.Access)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

// List handles GET /v1/questionnaires
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	questionnaires, err := h.questionnaireSvc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questionnaires": questionnaires})
}

// Get handles GET /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	q, questions, err := h.questionnaireSvc.Get(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questionnaire": q,
		"questions":     questions,
	})
}

// Update handles PUT /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q := &model.Questionnaire{
		ID:          mux.Vars(r)["questionnaireId"],
		Title:       req.Title,
		Description: req.Description,
		Access:      req.Access,
	}
	if err := h.questionnaireSvc.Update(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), q); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if err := h.questionnaireSvc.Delete(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddQuestion handles POST /v1/questionnaires/{questionnaireId}/questions
func (h *QuestionnaireHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := &model.Question{
		QuestionnaireID: mux.Vars(r)["questionnaireId"],
		Text:            req.Text,
		Type:            req.Type,
		Options:         req.Options,
		Required:        req.Required,
	}
	id, err := h.questionnaireSvc.AddQuestion(r.Context(), middleware.GetUserID(r.Context()), middleware.GetRole(r.Context()), question)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"questionId": id})
}
