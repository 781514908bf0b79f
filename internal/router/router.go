package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/auth"
	"github.com/medicard/patient-record-api/internal/config"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/handlers"
	"github.com/medicard/patient-record-api/internal/middleware"
	"github.com/medicard/patient-record-api/internal/service"
)

// Services bundles the service layer handed to the router
type Services struct {
	Auth     *service.AuthService
	Patient  *service.PatientService
	Hospital *service.HospitalService
	Consent  *service.ConsentService
	ADR      *service.ADRService
}

// SetupRouter configures all API routes
func SetupRouter(cfg *config.Config, db *database.DB, services *Services, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	if cfg.CORS.Enabled {
		router.Use(middleware.CORS(&cfg.CORS))
	}

	authHandler := handlers.NewAuthHandler(services.Auth)
	patientHandler := handlers.NewPatientHandler(services.Patient, services.Consent)
	hospitalHandler := handlers.NewHospitalHandler(services.Hospital, services.Patient, services.Consent, services.ADR)
	healthHandler := handlers.NewHealthHandler(db)

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		if cfg.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Capacity)
			authRoutes.Use(limiter.Middleware())
		}
		{
			authRoutes.POST("/patients/register", authHandler.RegisterPatient)
			authRoutes.POST("/patients/login", authHandler.LoginPatient)
			authRoutes.POST("/hospitals/register", authHandler.RegisterHospital)
			authRoutes.POST("/hospitals/login", authHandler.LoginHospital)
		}

		patients := v1.Group("/patients")
		patients.Use(middleware.JWTAuth(cfg.Auth.JWTSecret), middleware.RequireRole(auth.RolePatient))
		{
			patients.GET("/me", patientHandler.GetMyRecord)
			patients.PUT("/me", patientHandler.UpdateMyInfo)
			patients.GET("/me/consent-requests", patientHandler.ListConsentRequests)
			patients.POST("/me/consent-requests/:requestId/respond", patientHandler.RespondToConsentRequest)
		}

		hospitals := v1.Group("/hospitals")
		hospitals.Use(middleware.JWTAuth(cfg.Auth.JWTSecret), middleware.RequireRole(auth.RoleHospital))
		{
			hospitals.GET("/me", hospitalHandler.GetMyProfile)
			hospitals.GET("/patients/:medicardId", hospitalHandler.LookupPatient)
			hospitals.POST("/patients/:medicardId/update-requests", hospitalHandler.CreateUpdateRequest)
			hospitals.POST("/adr-checks", hospitalHandler.CheckADR)
		}
	}

	return router
}
