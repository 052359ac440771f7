package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	callbackAnswerPrefix = "ans"
	callbackPlay         = "play"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	switch {
	case strings.HasPrefix(cb.Data, callbackAnswerPrefix+":"):
		_ = h.withErrorHandling(h.handleAnswerCallback(cb))(ctx, chatID)
	case cb.Data == callbackPlay:
		_ = h.withErrorHandling(h.handlePlay(cb.From.ID))(ctx, chatID)
	default:
		return
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// handleAnswerCallback scores a tapped answer button and moves the game
// forward. Only the session owner may answer; anyone else tapping buttons in
// a shared chat is turned away.
func (h *Handler) handleAnswerCallback(cb *tgbotapi.CallbackQuery) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sessionID, questionID, letter, ok := parseAnswerCallback(cb.Data)
		if !ok {
			h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
			return nil
		}

		// Ownership check: a cache hit proves the session is the caller's
		// own; otherwise fall back to loading it.
		if cachedID, ok := h.sessions.Get(cb.From.ID); !ok || cachedID != sessionID {
			session, err := h.gameService.GetSessionByID(ctx, sessionID)
			if err != nil {
				return err
			}
			if session.UserID != cb.From.ID {
				return h.send(newPlainMessage(chatID, msgNotYourGame))
			}
		}

		result, err := h.gameService.SubmitAnswer(ctx, sessionID, questionID, letter)
		if err != nil {
			return err
		}

		if !result.Accepted {
			h.sessions.Delete(cb.From.ID)
			return h.send(newPlainMessage(chatID, msgGameAlreadyOver))
		}

		// Replace the question's keyboard with the verdict.
		feedback := formatAnswerFeedback(result.Question, result.Correct, result.PointsEarned)
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, cb.Message.Text+"\n\n"+feedback)
		if err := h.send(edit); err != nil {
			return err
		}

		if result.GameOver {
			h.sessions.Delete(cb.From.ID)

			msg := newPlainMessage(chatID, formatGameSummary(result.Session))
			msg.ReplyMarkup = buildPlayAgainKeyboard()
			return h.send(msg)
		}

		return h.sendNextQuestion(ctx, chatID, sessionID)
	}
}

func parseAnswerCallback(data string) (sessionID, questionID int64, letter string, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return 0, 0, "", false
	}

	sessionID, err1 := strconv.ParseInt(parts[1], 10, 64)
	questionID, err2 := strconv.ParseInt(parts[2], 10, 64)
	letter = parts[3]
	if err1 != nil || err2 != nil || letter == "" {
		return 0, 0, "", false
	}

	return sessionID, questionID, letter, true
}
