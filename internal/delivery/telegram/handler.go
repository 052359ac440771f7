package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
	"github.com/galdrimer/loyalty-trivia/internal/service"
	"github.com/galdrimer/loyalty-trivia/internal/storage"
)

type GameService interface {
	StartNewGame(ctx context.Context, userID int64, totalQuestions int) (*entities.GameSession, error)
	GetCurrentSession(ctx context.Context, userID int64) (*entities.GameSession, error)
	GetSessionByID(ctx context.Context, sessionID int64) (*entities.GameSession, error)
	GetNextQuestion(ctx context.Context, sessionID int64) (*entities.GameQuestion, *entities.GameSession, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID int64, answer string) (*service.AnswerResult, error)
	ForceEndOnLogout(ctx context.Context, userID int64)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID int64, username string) error
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
}

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	gameService GameService
	userService UserService
	sessions    *storage.SessionCache
	gameLength  int // questions per game
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	gameService GameService,
	userService UserService,
	gameLength int,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		gameService: gameService,
		userService: userService,
		sessions:    storage.NewSessionCache(),
		gameLength:  gameLength,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID

	h.logger.Debug("command received",
		zap.Int64("user_id", userID),
		zap.String("command", msg.Command()),
	)

	// Register the user on first contact so the points ledger always has a
	// row to credit.
	if err := h.userService.EnsureUser(ctx, userID, msg.From.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	var fn HandlerFunc
	switch msg.Command() {
	case "start":
		fn = h.handleStart()
	case "play":
		fn = h.handlePlay(userID)
	case "score":
		fn = h.handleScore(userID)
	case "quit":
		fn = h.handleQuit(userID)
	case "help":
		fn = h.handleHelp()
	default:
		fn = func(_ context.Context, chatID int64) error {
			return h.send(newPlainMessage(chatID, msgUnknownCommand))
		}
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.bot.Send(c)
	return err
}

func (h *Handler) sendError(chatID int64, text string) {
	if err := h.send(newPlainMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
