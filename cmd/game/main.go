package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/galdrimer/loyalty-trivia/internal/config"
	"github.com/galdrimer/loyalty-trivia/internal/delivery/telegram"
	"github.com/galdrimer/loyalty-trivia/internal/infra/postgres"
	"github.com/galdrimer/loyalty-trivia/internal/logger"
	"github.com/galdrimer/loyalty-trivia/internal/repository"
	"github.com/galdrimer/loyalty-trivia/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zapLogger.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "play",
			Description: "Start a trivia game",
		},
		{
			Command:     "score",
			Description: "Show your loyalty points and best score",
		},
		{
			Command:     "quit",
			Description: "Abandon the current game",
		},
		{
			Command:     "help",
			Description: "How the game works",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zapLogger.Warn("failed to set bot commands", zap.Error(err))
	}

	zapLogger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zapLogger.Fatal("database url not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Initialize repositories and services.
	questionRepo := repository.NewQuestionRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	transactor := postgres.NewTransactor(pool)

	ledgerService := service.NewLedgerService(userRepo)
	gameService := service.NewGameService(questionRepo, sessionRepo, ledgerService, transactor, zapLogger)
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(questionRepo, zapLogger)

	if _, err := contentService.SeedIfEmpty(ctx, cfg.Game.QuestionsPath); err != nil {
		zapLogger.Fatal("failed to seed question bank", zap.Error(err))
	}

	go runStaleSessionSweep(ctx, gameService, cfg.Game, zapLogger)

	handler := telegram.NewHandler(
		bot,
		zapLogger,
		gameService,
		userService,
		cfg.Game.TotalQuestions,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Fatal("handler stopped", zap.Error(err))
	}

	zapLogger.Info("shutdown signal received")
}

// runStaleSessionSweep periodically closes sessions that were never finished,
// so abandoned games do not block their owners from starting new ones forever.
func runStaleSessionSweep(ctx context.Context, game *service.GameService, cfg config.Game, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := game.CleanupStaleSessions(ctx, cfg.StaleSessionAge); err != nil {
				logger.Error("stale session sweep failed", zap.Error(err))
			}
		}
	}
}
