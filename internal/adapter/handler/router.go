package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clarityhub/clarityhub/internal/infrastructure/http/middleware"
	"github.com/clarityhub/clarityhub/pkg/config"
	"github.com/clarityhub/clarityhub/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	jwtManager        *jwt.Manager
	transcriptHandler *Transcript
	pipelineHandler   *Pipeline
	projectHandler    *Project
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, transcriptHandler *Transcript, pipelineHandler *Pipeline, projectHandler *Project) *Router {
	return &Router{
		cfg:               cfg,
		jwtManager:        jwtManager,
		transcriptHandler: transcriptHandler,
		pipelineHandler:   pipelineHandler,
		projectHandler:    projectHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group; in development auth is skipped so curl works without
	// an identity provider running.
	v1 := e.Group("/v1")
	if !rt.cfg.IsDevelopment() {
		v1.Use(middleware.EchoAuth(rt.jwtManager))
	}

	rt.setupTranscriptRoutes(v1)
	rt.setupProjectRoutes(v1)
}

// setupTranscriptRoutes configures transcript ingestion and processing routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcripts := g.Group("/transcripts")

	transcripts.POST("", rt.transcriptHandler.CreateFromText)
	transcripts.POST("/upload", rt.transcriptHandler.Upload)
	transcripts.GET("/:id", rt.transcriptHandler.Get)

	transcripts.POST("/:id/process", rt.pipelineHandler.Process)
	transcripts.GET("/:id/status", rt.pipelineHandler.Status)
}

// setupProjectRoutes configures project and dashboard routes
func (rt *Router) setupProjectRoutes(g *echo.Group) {
	projects := g.Group("/projects")

	projects.POST("", rt.projectHandler.Create)
	projects.GET("", rt.projectHandler.List)
	projects.GET("/:id", rt.projectHandler.Get)
	projects.GET("/:id/action-items", rt.projectHandler.ActionItems)
	projects.GET("/:id/decisions", rt.projectHandler.Decisions)
	projects.GET("/:id/reports", rt.projectHandler.Reports)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
