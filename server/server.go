package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trafficdash/database"
	"trafficdash/server/middleware"
	"trafficdash/server/services"
)

// cameraFetcher is the upstream camera registry dependency. Satisfied
// by CameraClient; tests substitute a stub.
type cameraFetcher interface {
	FetchCameras(ctx context.Context, province, district, deviceCode string) ([]CameraDevice, error)
}

// Server owns the store, the interaction sessions and the services
// behind the dashboard API.
type Server struct {
	cfg      *Config
	db       *database.ViolationsDB
	sessions *SessionStore
	cameras  cameraFetcher

	ingest     *services.IngestService
	dashboard  *services.DashboardService
	comparison *services.ComparisonService
	export     *services.ExportService
	mail       *services.MailService

	httpServer *http.Server
}

// NewServer opens the violation store and wires all services.
func NewServer(cfg *Config) (*Server, error) {
	db, err := database.NewViolationsDBWithConfig(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open violation store: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		db:         db,
		sessions:   NewSessionStore(),
		cameras:    NewCameraClient(cfg.CameraAPIKey, cfg.CameraAPIURL, cfg.CameraAPITimeout, cfg.CameraAPIRateLimit),
		ingest:     services.NewIngestService(db),
		dashboard:  services.NewDashboardService(db),
		comparison: services.NewComparisonService(db),
		export:     services.NewExportService(),
		mail:       services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom),
	}
	return s, nil
}

// DB exposes the store for command line tooling built on the server wiring.
func (s *Server) DB() *database.ViolationsDB {
	return s.db
}

// Router builds the gin engine with the full middleware chain and all
// API routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Gzip())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/violations/upload", s.handleViolationsUpload)
		api.DELETE("/violations", s.handleViolationsDeleteAll)
		api.DELETE("/violations/range", s.handleViolationsDeleteRange)

		api.GET("/dashboard/overview", s.handleOverview)
		api.GET("/dashboard/anomalies", s.handleAnomalies)
		api.GET("/dashboard/devices/:code", s.handleDeviceDetail)
		api.GET("/dashboard/filter-options", s.handleFilterOptions)

		api.GET("/session/filters", s.handleFiltersGet)
		api.PUT("/session/filters", s.handleFiltersSet)
		api.POST("/session/reset", s.handleSessionReset)

		api.POST("/inventory/upload/:source", s.handleInventoryUpload)
		api.GET("/comparison/report", s.handleComparisonReport)
		api.GET("/comparison/differences", s.handleComparisonDifferences)

		api.GET("/cameras", s.handleCameras)
		api.GET("/export", s.handleExport)
		api.POST("/notify/summary", s.handleNotifySummary)
	}

	RegisterSwaggerRoutes(router)
	return router
}

// Start runs the HTTP server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the store.
func (s *Server) Close() error {
	return s.db.Close()
}

// handleHealth reports liveness and store row count.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.db.Count()
	if err != nil {
		SendJSONError(c, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{
		"status":  "ok",
		"records": count,
		"time":    time.Now().Format(time.RFC3339),
	})
}
