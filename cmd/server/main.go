// Command server runs the LMS platform API: student and instructor signup,
// the orphaned-account reconciliation sweep, and instructor application review.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campusly/lms-platform/internal/api"
	"github.com/campusly/lms-platform/internal/api/metrics"
	"github.com/campusly/lms-platform/internal/core/service"
	"github.com/campusly/lms-platform/internal/infrastructure/queue"
	"github.com/campusly/lms-platform/internal/pkg/config"
	"github.com/campusly/lms-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A local .env is optional; real environment variables win.
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "lms-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := connectBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect backends")
	}
	defer b.close(log)

	// --- Services ---
	reconciler := service.NewProfileReconciler(b.profiles, log,
		service.WithVerifyPolicy(service.VerifyPolicy{
			Attempts:  cfg.Verify.Attempts,
			BaseDelay: cfg.Verify.BaseDelay,
			MaxDelay:  cfg.Verify.MaxDelay,
		}),
		service.WithStepObserver(func(step, result string) {
			metrics.ProfileStepsTotal.WithLabelValues(step, result).Inc()
		}),
	)
	applications := service.NewApplicationWriter(b.applications, log)
	guard := service.NewGuard(b.cooldowns, log)
	signup := service.NewSignupService(service.SignupDeps{
		Guard:        guard,
		Accounts:     service.NewAccountCreator(b.identity, log),
		Profiles:     reconciler,
		Applications: applications,
		Orphans:      b.orphans,
		Remediation: service.Remediation{
			SupportEmail: cfg.Support.Email,
			RepairURL:    cfg.Support.RepairURL,
		},
	}, log)
	review := service.NewReviewService(b.applications, b.profiles, log)

	// --- Orphan reconciliation ---
	orphans := service.NewOrphanService(b.orphans, reconciler, applications, log)
	dispatcher := queue.NewDispatcher(cfg.Sweep.Workers, orphans, log)
	workers := dispatcher.Start(ctx)
	go queue.NewSweeper(orphans, dispatcher, cfg.Sweep.Interval, log).Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Signup:       signup,
		Guard:        guard,
		Applications: review,
		Readiness:    b.readiness,
		JWTSecret:    cfg.JWTSecret,
		Log:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Str("identity", cfg.IdentityDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	workers.Wait()
}
