package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/database"
	"github.com/milkyano-media/aspire-backend/internal/handler"
	"github.com/milkyano-media/aspire-backend/internal/logger"
	"github.com/milkyano-media/aspire-backend/internal/mailer"
	"github.com/milkyano-media/aspire-backend/internal/repository"
	"github.com/milkyano-media/aspire-backend/internal/router"
	"github.com/milkyano-media/aspire-backend/internal/service"
	"github.com/milkyano-media/aspire-backend/internal/validator"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
	"github.com/milkyano-media/aspire-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Aspire Backend")

	if !cfg.WiseLMS.Valid() {
		log.Warn().Msg("WiseLMS credentials missing; LMS-backed features will refuse requests")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── WiseLMS Client ────────────────────────────────────────────────
	lmsClient := wiselms.NewClient(cfg.WiseLMS, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	adminService := service.NewAdminService(adminRepo, roleRepo)
	adminUserService := service.NewAdminUserService(pool, authService)
	adminRoleService := service.NewAdminRoleService(roleRepo)
	courseService := service.NewCourseService(courseRepo)
	subjectService := service.NewSubjectService(subjectRepo, log)
	leadService := service.NewLeadService(leadRepo, rdb, cfg, log)
	dashboardService := service.NewDashboardService(dashboardRepo, leadRepo)
	enrollmentService := service.NewEnrollmentService(lmsClient, log)
	bulkMailService := service.NewBulkMailService(lmsClient, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, adminService),
		Webhook:   handler.NewWebhookHandler(cfg, enrollmentService, log),
		Course:    handler.NewCourseHandler(courseService),
		Subject:   handler.NewSubjectHandler(subjectService),
		Lead:      handler.NewLeadHandler(leadService),
		BulkMail:  handler.NewBulkMailHandler(bulkMailService),
		AdminUser: handler.NewAdminUserHandler(adminUserService),
		AdminRole: handler.NewAdminRoleHandler(adminRoleService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	sgMailer := mailer.NewSendGridMailer(cfg, log)
	mailerWorker := worker.NewMailerWorker(rdb, sgMailer, cfg, log)

	go mailerWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the mail worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
