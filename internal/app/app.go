package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"personalsite/internal/config"
	"personalsite/internal/cv"
	"personalsite/internal/handlers"
	"personalsite/internal/middleware"
	"personalsite/internal/ratelimit"
	"personalsite/internal/repositories"
	"personalsite/internal/routes"
	"personalsite/internal/services"
)

// Run wires the application and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("close database", "error", err)
		}
	}()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		slog.Warn("database not reachable at startup", "error", err)
	}

	router, limiter, err := buildRouter(cfg, db)
	if err != nil {
		return err
	}
	go sweepRateLimits(ctx, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "environment", cfg.Build.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildRouter(cfg *config.Config, db *sql.DB) (*gin.Engine, *ratelimit.SlidingWindow, error) {
	loc, err := time.LoadLocation(cfg.Contact.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("contact timezone: %w", err)
	}

	// === Repos ===
	contactRepo := repositories.NewContactMessageRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	metaRepo := repositories.NewSiteMetaRepository(db)

	// === Services ===
	recaptcha := services.NewRecaptchaService(cfg.Recaptcha, nil)
	emailService := services.NewEmailService(cfg.Email)
	notifiers := services.MultiNotifier{
		services.NewEmailContactNotifier(emailService, cfg.Email.AdminEmail, cfg.Email.ContactSubject),
	}
	telegram, err := services.NewTelegramNotifier(cfg.Telegram)
	if err != nil {
		slog.Error("telegram notifier disabled", "error", err)
	} else if telegram != nil {
		notifiers = append(notifiers, telegram)
	}

	limiter := ratelimit.New(cfg.Contact.RateLimit.Window, cfg.Contact.RateLimit.MaxRequests)
	contactService := services.NewContactService(contactRepo, recaptcha, limiter, notifiers, loc)
	resumeService := services.NewResumeService(resumeRepo)
	metaService := services.NewMetaService(metaRepo)

	// CV
	converter, err := cv.NewPDFConverter(cv.FontSet{Dir: cfg.CV.FontDir, Family: cfg.CV.FontFamily}, cfg.CV.AssetDir)
	if err != nil {
		return nil, nil, err
	}
	generator := cv.NewGenerator(
		cv.NewAssembler(resumeService, cfg.CV.Profile),
		cv.NewRenderer(metaService, resumeService, converter),
	)

	// === Handlers ===
	contactHandler := handlers.NewContactHandler(contactService)
	cvHandler := handlers.NewCVHandler(generator, cfg.CV.CacheMaxAge)
	metaHandler := handlers.NewMetaHandler(metaService)
	systemHandler := handlers.NewSystemHandler(db, cfg.Build)

	// === Gin ===
	if cfg.Build.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(slog.Default()))

	routes.SetupRoutes(router, []byte(cfg.Auth.JWTSecret), contactHandler, cvHandler, metaHandler, systemHandler)
	return router, limiter, nil
}

// sweepRateLimits drops idle limiter keys once per window.
func sweepRateLimits(ctx context.Context, limiter *ratelimit.SlidingWindow) {
	ticker := time.NewTicker(limiter.Window())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := limiter.Sweep(now); removed > 0 {
				slog.Debug("rate limiter swept", "removed", removed, "tracked", limiter.Len())
			}
		}
	}
}
