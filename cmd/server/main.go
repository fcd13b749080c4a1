package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/appointment_service/db"
	"github.com/Freeeeeet/appointment_service/internal/app"
	"github.com/Freeeeeet/appointment_service/internal/auth"
	"github.com/Freeeeeet/appointment_service/internal/config"
	"github.com/Freeeeeet/appointment_service/internal/controller"
	"github.com/Freeeeeet/appointment_service/internal/controller/rest"
	"github.com/Freeeeeet/appointment_service/internal/payment"
	"github.com/Freeeeeet/appointment_service/internal/ratelimit"
	"github.com/Freeeeeet/appointment_service/internal/repository"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
	logger.Info("Service exited")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("Connected to database")

	migrator, err := app.NewMigrator(pool, db.Migrations, db.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	// Сервисы
	slotCfg := service.SlotConfig{
		Location:   cfg.Location,
		StartHour:  cfg.BusinessStart,
		EndHour:    cfg.BusinessEnd,
		SlotLength: cfg.SlotLength,
	}
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		userRepo,
		service.NewOverlapValidator(),
		service.NewSlotGenerator(appointmentRepo, slotCfg),
		logger,
	)
	userService := service.NewUserService(userRepo, logger)

	var gateway payment.Gateway
	if cfg.PaymentsEnabled() {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, logger)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payments disabled")
	}
	paymentService := service.NewPaymentService(gateway, appointmentService, cfg.StripePublishableKey, cfg.StripeCurrency, logger)

	if err := app.SeedAdmin(ctx, userService, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		return err
	}

	// Фоновые задачи
	authLimiter := ratelimit.New(cfg.AuthRateLimit, cfg.AuthRateBurst)
	janitor := app.NewJanitor(authLimiter, time.Minute, 3*time.Minute, logger)
	janitor.Start(ctx)
	defer janitor.Stop()

	if cfg.BotEnabled() {
		if err := startBot(ctx, cfg, appointmentService, logger); err != nil {
			return err
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.NewRouter(rest.Deps{
		Appointments: appointmentService,
		Users:        userService,
		Payments:     paymentService,
		Issuer:       auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiration),
		AuthLimiter:  authLimiter,
		Logger:       logger,
		Ping:         pool.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// startBot поднимает Telegram бота в отдельной горутине
func startBot(ctx context.Context, cfg *config.Config, appointments *service.AppointmentService, logger *zap.Logger) error {
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, appointments, cfg.TelegramAdminIDs, cfg.Location, logger.Named("bot"))
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	go func() {
		if err := botController.Start(ctx); err != nil {
			logger.Error("Bot stopped", zap.Error(err))
		}
	}()

	return nil
}
