// @title Traffic Enforcement Dashboard API
// @version 1.0
// @description Analysis dashboard over unmanned traffic enforcement exports: ingest, filtering, aggregation, anomaly detection, inventory comparison and camera registry lookups.

// @contact.name API Support

// @host localhost:8099
// @BasePath /
// @schemes http

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"trafficdash/server"
)

func main() {
	log.Println("Starting traffic enforcement dashboard server...")

	log.Println("[1/4] Loading configuration...")
	config, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded. Port: %s", config.Port)

	log.Println("[2/4] Setting up logging...")
	setupLogging(config.LogLevel)

	log.Printf("[3/4] Opening violation store at %s...", config.DatabasePath)
	srv, err := server.NewServer(config)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}
	defer srv.Close()
	log.Println("Violation store ready")

	if !config.MailConfigured() {
		log.Println("SMTP relay not configured, summary mail endpoint disabled")
	}

	log.Println("[4/4] Starting HTTP server...")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped")
}

func setupLogging(level string) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}
