package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildAnswerKeyboard builds the A-D answer buttons for a question.
func buildAnswerKeyboard(sessionID, questionID int64) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, 4)
	for _, letter := range []string{"A", "B", "C", "D"} {
		data := buildAnswerCallback(sessionID, questionID, letter)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(letter, data))
	}

	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

// buildPlayAgainKeyboard builds the keyboard shown after a finished game.
func buildPlayAgainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Play again", callbackPlay),
		),
	)
}

func buildAnswerCallback(sessionID, questionID int64, letter string) string {
	return fmt.Sprintf("%s:%d:%d:%s", callbackAnswerPrefix, sessionID, questionID, letter)
}
