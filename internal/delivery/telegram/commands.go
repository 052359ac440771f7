package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/galdrimer/loyalty-trivia/internal/repository"
	"github.com/galdrimer/loyalty-trivia/internal/service"
)

// handleStart greets the user; registration already happened on dispatch.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgWelcome))
	}
}

// handlePlay starts a new game and serves its first question. A game already
// in progress is resumed at its next question instead.
func (h *Handler) handlePlay(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.gameService.GetCurrentSession(ctx, userID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			session, err = h.gameService.StartNewGame(ctx, userID, h.gameLength)
			if errors.Is(err, service.ErrInsufficientContent) {
				return h.send(newPlainMessage(chatID, msgInsufficientContent))
			}
		}
		if err != nil {
			return err
		}

		h.sessions.Store(userID, session.ID)

		return h.sendNextQuestion(ctx, chatID, session.ID)
	}
}

// handleScore shows the user's loyalty points and best game score.
func (h *Handler) handleScore(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		user, err := h.userService.GetByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return h.send(newPlainMessage(chatID, msgWelcome))
		}
		if err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, formatScore(user)))
	}
}

// handleQuit abandons the current game with zero award, same as the website's
// logout hook does.
func (h *Handler) handleQuit(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.gameService.GetCurrentSession(ctx, userID); errors.Is(err, repository.ErrSessionNotFound) {
			return h.send(newPlainMessage(chatID, msgNoActiveGame))
		}

		h.gameService.ForceEndOnLogout(ctx, userID)
		h.sessions.Delete(userID)

		return h.send(newPlainMessage(chatID, msgGameAbandoned))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgHelp))
	}
}

// sendNextQuestion draws the next question for a session and sends it with
// the answer keyboard, or the game summary when the session has ended.
func (h *Handler) sendNextQuestion(ctx context.Context, chatID, sessionID int64) error {
	question, session, err := h.gameService.GetNextQuestion(ctx, sessionID)
	if err != nil {
		return err
	}

	if question == nil {
		// Session completed, either game over or the bank ran dry.
		h.sessions.Delete(session.UserID)

		msg := newPlainMessage(chatID, formatGameSummary(session))
		msg.ReplyMarkup = buildPlayAgainKeyboard()
		return h.send(msg)
	}

	h.logger.Debug("question served",
		zap.Int64("session_id", session.ID),
		zap.Int64("question_id", question.ID),
	)

	msg := newPlainMessage(chatID, formatQuestion(question, session))
	msg.ReplyMarkup = buildAnswerKeyboard(session.ID, question.ID)
	return h.send(msg)
}
