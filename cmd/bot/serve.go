package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/app"
	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/config"
	"github.com/Freeeeeet/counseling_portal/internal/controller"
	"github.com/Freeeeeet/counseling_portal/internal/httpserver"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/Freeeeeet/counseling_portal/internal/repository"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// oauthStateTTL bounds how long a Google authorization link stays usable
const oauthStateTTL = 30 * time.Minute

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, the HTTP endpoints and the daily digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("Starting counseling portal bot",
		zap.String("environment", cfg.Environment),
		zap.Bool("production", cfg.IsProduction()),
		zap.String("timezone", loc.String()),
		zap.Int("digest_hour", cfg.DigestHour))

	pool, err := app.NewPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, app.MigrationsFS(cfg.MigrationsPath), logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		_ = migrator.Close()
		return err
	}
	_ = migrator.Close()

	// Storage
	sessionRepo := repository.NewSessionRepository(pool)
	viewRepo := repository.NewCalendarViewRepository(pool)
	digestRepo := repository.NewDigestRepository(pool)

	// External systems
	idp := auth.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.RequestTimeout, logger)
	parser := auth.NewTokenParser(cfg.SupabaseJWTKey)
	signer := auth.NewStateSigner(cfg.StateSecret, oauthStateTTL)
	api := portalapi.NewClient(cfg.BackendURL, cfg.RequestTimeout, logger)

	// Use-cases
	sessions := service.NewSessionService(idp, parser, sessionRepo, logger)
	appointments := service.NewAppointmentService(api, sessions, logger)
	services := controller.Services{
		Sessions:      sessions,
		Appointments:  appointments,
		Availability:  service.NewAvailabilityService(api, sessions, logger),
		CalendarSync:  service.NewCalendarSyncService(api, sessions, signer, cfg.OAuthReturnURL(), logger),
		Students:      service.NewStudentService(api, sessions, logger),
		CalendarViews: service.NewCalendarViewService(viewRepo, loc, logger),
	}

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(botInstance, services, loc, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// The command menu is cosmetic, the bot works without it
		logger.Warn("Bot commands not registered", zap.Error(err))
	}

	digest := service.NewDigestService(sessions, appointments, digestRepo, botController, loc, logger)
	scheduler := app.NewScheduler(digest, cfg.DigestHour, loc, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := httpserver.NewServer(cfg.HTTPAddr, pool, services.CalendarSync, botController, logger)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	go func() {
		_ = botController.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Stopped")
	return nil
}
