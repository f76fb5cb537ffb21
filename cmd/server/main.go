package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"vahcare-api/internal/api/routes"
	"vahcare-api/internal/config"
	"vahcare-api/internal/intake"
	"vahcare-api/internal/logging"
	"vahcare-api/internal/mailer"
	"vahcare-api/internal/store"
	"vahcare-api/internal/uploads"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging system
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting VAH Care API", map[string]interface{}{
		"storage":  cfg.Storage.Type,
		"database": cfg.Database.Driver,
	})

	// Open database and migrate schema
	st, err := store.New(cfg)
	if err != nil {
		logger.Error("Failed to open database", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// File storage backend
	files, err := uploads.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize file storage", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Outbound mail. A dead SMTP server only degrades notifications,
	// never intake, so a failed handshake is logged and startup proceeds.
	sender := mailer.NewSMTPSender(cfg)
	if cfg.SMTP.Host != "" {
		verifyCtx, cancel := context.WithTimeout(context.Background(), cfg.SMTP.Timeout)
		if err := sender.Verify(verifyCtx); err != nil {
			logger.Warn("SMTP verification failed, notifications may not be delivered", map[string]interface{}{
				"host":  cfg.SMTP.Host,
				"error": err.Error(),
			})
		} else {
			logger.Info("SMTP server verified", map[string]interface{}{"host": cfg.SMTP.Host})
		}
		cancel()
	}
	m := mailer.New(cfg, sender)

	svc := intake.New(cfg, st, files, m)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, st, files, svc)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if err := st.Close(); err != nil {
			logger.Error("Error closing database", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
