package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"kuisioner/internal/service"
	"kuisioner/internal/transport/rest/handler"
	"kuisioner/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService          *service.AuthService
	QuestionnaireService *service.QuestionnaireService
	ResponseService      *service.ResponseService
	AnalyticsService     *service.AnalyticsService
	ReportService        *service.ReportService
	ExportService        *service.ExportService
	StaticDir            string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.QuestionnaireService)
	surveyHandler := handler.NewSurveyHandler(c.QuestionnaireService, c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.QuestionnaireService, c.AnalyticsService, c.ExportService)
	reportHandler := handler.NewReportHandler(c.QuestionnaireService, c.ReportService, c.ExportService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{questionnaireId}", surveyHandler.GetForm).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{questionnaireId}/responses", surveyHandler.Submit).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Rendered charts
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(c.StaticDir))),
	).Methods("GET")

	// Creator routes (require creator auth)
	creatorRoutes := v1.NewRoute().Subrouter()
	creatorRoutes.Use(authMW.RequireCreator)

	creatorRoutes.HandleFunc("/questionnaires", questionnaireHandler.Create).Methods("POST", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires", questionnaireHandler.List).Methods("GET", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Get).Methods("GET", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Update).Methods("PUT", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Delete).Methods("DELETE", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/questions", questionnaireHandler.AddQuestion).Methods("POST", "OPTIONS")

	// Analytics and report routes (creator only)
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/analytics", analyticsHandler.Get).Methods("GET", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/questions/{questionId}/breakdown", analyticsHandler.QuestionBreakdown).Methods("GET", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/report", reportHandler.Generate).Methods("GET", "POST", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/export", reportHandler.ExportCSV).Methods("GET", "OPTIONS")
	creatorRoutes.HandleFunc("/questionnaires/{questionnaireId}/qr", reportHandler.ShareQR).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
