package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kuisioner/internal/cache"
	"kuisioner/internal/config"
	"kuisioner/internal/render"
	"kuisioner/internal/repository"
	"kuisioner/internal/service"
	"kuisioner/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create user indexes:", err)
	}
	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create response indexes:", err)
	}

	// Initialize caches
	analyticsCache := cache.NewAnalyticsCache(rdb)

	// Initialize renderer
	style := render.DefaultStyle()
	style.FontPath = cfg.FontPath
	renderer := render.New(style)

	// Initialize services
	authSvc := service.NewAuthService(cfg, userRepo)
	questionnaireSvc := service.NewQuestionnaireService(questionnaireRepo, questionRepo)
	responseSvc := service.NewResponseService(responseRepo, questionRepo, questionnaireRepo, userRepo, analyticsCache)
	analyticsSvc := service.NewAnalyticsService(responseRepo, questionRepo, analyticsCache)
	reportSvc := service.NewReportService(responseRepo, questionRepo, userRepo, analyticsSvc, renderer, cfg.StaticDir, cfg.PublicBaseURL)
	exportSvc := service.NewExportService(responseRepo, questionRepo, userRepo)

	// Create router with container
	container := &rest.Container{
		AuthService:          authSvc,
		QuestionnaireService: questionnaireSvc,
		ResponseService:      responseSvc,
		AnalyticsService:     analyticsSvc,
		ReportService:        reportSvc,
		ExportService:        exportSvc,
		StaticDir:            cfg.StaticDir,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/questionnaires")
		log.Println("  GET  /v1/surveys/{questionnaireId}")
		log.Println("  POST /v1/surveys/{questionnaireId}/responses")
		log.Println("  GET  /v1/questionnaires/{questionnaireId}/analytics")
		log.Println("  POST /v1/questionnaires/{questionnaireId}/report")
		log.Println("  GET  /v1/questionnaires/{questionnaireId}/export")
		log.Println("  GET  /v1/questionnaires/{questionnaireId}/qr")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
