package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyquiz/internal/config"
	"github.com/aliskhannn/studyquiz/internal/delivery/web"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres"
	"github.com/aliskhannn/studyquiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/studyquiz/internal/logger"
	"github.com/aliskhannn/studyquiz/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	tr := postgres.NewTransactor(pool)

	// Initialize repositories and services.
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewQuizResultRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sessionStorage := repository.NewSessionStorage(pool)

	userService := service.NewUserService(userRepo, resultRepo, tr)
	quizService := service.NewQuizService(
		questionRepo,
		resultRepo,
		service.NewQuestionSelector(),
		cfg.Quiz.DefaultCount,
		zapLogger.Named("quiz"),
	)
	scoringService := service.NewScoringService(questionRepo, resultRepo, tr, zapLogger.Named("scoring"))
	questionService := service.NewQuestionService(questionRepo)
	resetService := service.NewResetService(resultRepo, zapLogger.Named("reset"))

	if cfg.Admin.Email != "" {
		created, err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return err
		}
		if created {
			zapLogger.Info("admin account created", zap.String("email", cfg.Admin.Email))
		}
	}

	sessions := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     cfg.Session.TTL,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieSameSite: "Lax",
	})

	handler := web.NewHandler(
		zapLogger.Named("http"),
		sessions,
		userService,
		quizService,
		scoringService,
		questionService,
		resetService,
		pool,
	)
	app := web.NewApp(handler, web.AppConfig{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		LimiterStorage: sessionStorage,
	})

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- app.Listen(cfg.HTTP.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return nil
}
