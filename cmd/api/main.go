package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salusclinic/booking-api/internal/config"
	"github.com/salusclinic/booking-api/internal/email"
	"github.com/salusclinic/booking-api/internal/handler"
	authHandler "github.com/salusclinic/booking-api/internal/handler/auth"
	bookingHandler "github.com/salusclinic/booking-api/internal/handler/booking"
	catalogHandler "github.com/salusclinic/booking-api/internal/handler/catalog"
	pagesHandler "github.com/salusclinic/booking-api/internal/handler/pages"
	profileHandler "github.com/salusclinic/booking-api/internal/handler/profile"
	"github.com/salusclinic/booking-api/internal/middleware"
	"github.com/salusclinic/booking-api/internal/repository/postgres"
	redisrepo "github.com/salusclinic/booking-api/internal/repository/redis"
	"github.com/salusclinic/booking-api/internal/router"
	authService "github.com/salusclinic/booking-api/internal/service/auth"
	bookingService "github.com/salusclinic/booking-api/internal/service/booking"
	catalogService "github.com/salusclinic/booking-api/internal/service/catalog"
	pkgauth "github.com/salusclinic/booking-api/pkg/auth"
	"github.com/salusclinic/booking-api/pkg/logger"
)

func main() {
	log := logger.NewLogger(nil)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis (revoked-session store)
	redisClient, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	apptRepo := postgres.NewAppointmentRepository(base)
	tokenRepo := postgres.NewTokenRepository(base)
	catalogRepo := postgres.NewCatalogRepository(base)
	sessionStore := redisrepo.NewSessionStore(redisClient)

	// Initialize supporting services
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	emailSvc := email.NewSMTPService(cfg.SMTP, cfg.Server.BaseURL)

	// Initialize services
	authSvc := authService.NewService(userRepo, tokenRepo, sessionStore, jwtSvc, emailSvc)
	bookingSvc := bookingService.NewService(apptRepo)
	catalogSvc := catalogService.NewService(catalogRepo)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	healthH := handler.NewHealthHandler(db, redisClient)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		bookingHandler.NewHandler(bookingSvc),
		catalogHandler.NewHandler(catalogSvc),
		profileHandler.NewHandler(authSvc, bookingSvc),
		pagesHandler.NewHandler(cfg.Clinic),
		healthH,
		router.Config{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
			CORSConfig:    middleware.DefaultCORSConfig(),
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()
	log.Info("server started", "port", cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	grace := cfg.Server.ShutdownGrace
	if grace == 0 {
		grace = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
