package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/config"
	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/router"
	"github.com/medicard/patient-record-api/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting Patient Record API Server...")

	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger.WithField("log_level", logger.GetLevel().String()).Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Initialize(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	patientDAO := dao.NewPatientDAO(db)
	hospitalDAO := dao.NewHospitalDAO(db)
	consentRequestDAO := dao.NewConsentRequestDAO(db)
	drugRuleDAO := dao.NewDrugRuleDAO(db)

	// Initialize services
	authService := service.NewAuthService(
		patientDAO,
		hospitalDAO,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenValidity,
		cfg.Auth.BcryptCost,
		logger,
	)
	patientService := service.NewPatientService(patientDAO, logger)
	hospitalService := service.NewHospitalService(hospitalDAO, logger)
	consentService := service.NewConsentService(
		consentRequestDAO,
		patientDAO,
		db,
		cfg.Consent.RequestExpiryDays,
		logger,
	)
	adrService := service.NewADRService(patientDAO, drugRuleDAO, logger)

	logger.Info("Services initialized successfully")

	// Seed the drug interaction rule table on first start
	if err := adrService.SeedReferenceRules(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to seed drug interaction rules")
	}

	// Setup router
	ginRouter := router.SetupRouter(cfg, db, &router.Services{
		Auth:     authService,
		Patient:  patientService,
		Hospital: hospitalService,
		Consent:  consentService,
		ADR:      adrService,
	}, logger)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("addr", serverAddr).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database connection")
	}

	logger.Info("Server exited gracefully")
}
