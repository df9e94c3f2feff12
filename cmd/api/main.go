package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/clarityhub/clarityhub/pkg/validator"

	"github.com/clarityhub/clarityhub/internal/adapter/handler"
	"github.com/clarityhub/clarityhub/internal/adapter/repository"
	"github.com/clarityhub/clarityhub/internal/infrastructure/cache"
	"github.com/clarityhub/clarityhub/internal/infrastructure/database"
	"github.com/clarityhub/clarityhub/internal/infrastructure/storage"
	"github.com/clarityhub/clarityhub/internal/usecase/dashboard"
	"github.com/clarityhub/clarityhub/internal/usecase/ingest"
	"github.com/clarityhub/clarityhub/internal/usecase/pipeline"
	"github.com/clarityhub/clarityhub/pkg/config"
	"github.com/clarityhub/clarityhub/pkg/jwt"
	"github.com/clarityhub/clarityhub/pkg/llm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Migrations run on startup only when explicitly enabled.
	// Production deployments manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping startup migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	statusStore := cache.NewStatusStore(redisClient, cfg.Pipeline.StatusTTL)

	// Initialize object storage
	log.Println("📦 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	transcriptRepo := repository.NewTranscriptRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)
	decisionRepo := repository.NewDecisionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	llmClient := llm.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, logger)
	pipelineService := pipeline.NewService(
		transcriptRepo,
		projectRepo,
		actionItemRepo,
		decisionRepo,
		reportRepo,
		llmClient,
		statusStore,
		logger,
	)

	// Initialize speech-to-text ingestion
	var aaiClient *aai.Client
	if cfg.AssemblyAI.APIKey != "" {
		log.Println("🎙️ Initializing speech-to-text client...")
		aaiClient = aai.NewClient(cfg.AssemblyAI.APIKey)
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, audio ingestion disabled")
	}
	ingestService := ingest.NewService(transcriptRepo, minioClient, aaiClient, logger)

	// Initialize dashboard service
	dashboardService := dashboard.NewService(projectRepo, actionItemRepo, decisionRepo, reportRepo, logger)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	transcriptHandler := handler.NewTranscript(ingestService, transcriptRepo, logger)
	pipelineHandler := handler.NewPipeline(pipelineService, transcriptRepo, statusStore, logger)
	projectHandler := handler.NewProject(projectRepo, dashboardService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, transcriptHandler, pipelineHandler, projectHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
