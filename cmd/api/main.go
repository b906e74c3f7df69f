package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/globalhospital/portal-api/config"
	"github.com/globalhospital/portal-api/internal/email"
	"github.com/globalhospital/portal-api/internal/handler"
	appointmentHandler "github.com/globalhospital/portal-api/internal/handler/appointment"
	authHandler "github.com/globalhospital/portal-api/internal/handler/auth"
	doctorHandler "github.com/globalhospital/portal-api/internal/handler/doctor"
	patientHandler "github.com/globalhospital/portal-api/internal/handler/patient"
	specialtyHandler "github.com/globalhospital/portal-api/internal/handler/specialty"
	"github.com/globalhospital/portal-api/internal/middleware"
	"github.com/globalhospital/portal-api/internal/repository/postgres"
	"github.com/globalhospital/portal-api/internal/repository/redis"
	"github.com/globalhospital/portal-api/internal/router"
	appointmentService "github.com/globalhospital/portal-api/internal/service/appointment"
	authService "github.com/globalhospital/portal-api/internal/service/auth"
	doctorService "github.com/globalhospital/portal-api/internal/service/doctor"
	patientService "github.com/globalhospital/portal-api/internal/service/patientprofile"
	specialtyService "github.com/globalhospital/portal-api/internal/service/specialty"
	"github.com/globalhospital/portal-api/pkg/auth"
	"github.com/globalhospital/portal-api/pkg/logger"
	"github.com/globalhospital/portal-api/pkg/metrics"
	"github.com/globalhospital/portal-api/pkg/security"
)

func main() {
	// Missing .env is fine; the environment may be set by the host.
	_ = godotenv.Load()

	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redis.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}

	userRepo := postgres.NewUserRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientProfileRepo := postgres.NewPatientProfileRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)

	appMetrics := metrics.NewMetrics("portal")

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewService(cfg.SMTP, appMetrics)

	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher, emailSvc, log)
	specialtySvc := specialtyService.NewService(specialtyRepo, cfg.Catalog.CacheTTL)
	doctorSvc := doctorService.NewService(doctorRepo, cfg.Catalog.MaxListResults)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, emailSvc, appMetrics, log)
	patientSvc := patientService.NewService(patientProfileRepo, prescriptionRepo, appMetrics)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	specialtyH := specialtyHandler.NewHandler(specialtySvc, doctorSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc, appointmentSvc, cfg.Catalog.PreviewLimit)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, appMetrics)
	patientH := patientHandler.NewHandler(patientSvc, appMetrics)

	r := router.NewRouter(
		authMiddleware,
		authH,
		specialtyH,
		doctorH,
		appointmentH,
		patientH,
		h,
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "portal_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(fmt.Sprintf("listening on :%d", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
