// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

const (
	msgWelcome = "👋 Welcome to the loyalty trivia game!\n\n" +
		"Answer questions about our stores and products and earn loyalty points.\n\n" +
		"/play — start a game\n" +
		"/score — your points and best score\n" +
		"/quit — abandon the current game\n" +
		"/help — how it works"

	msgHelp = "🎮 <b>How the game works</b>\n\n" +
		"Each game has a fixed number of questions. A correct answer scores the " +
		"question's points. Finishing a game earns bonus loyalty points: 20 for " +
		"completing plus up to 10 more for accuracy.\n\n" +
		"⚠️ Quitting mid-game forfeits the bonus — walking away earns nothing.\n\n" +
		"/play — start a game\n" +
		"/score — your points and best score\n" +
		"/quit — abandon the current game"

	msgInternalError       = "Something went wrong. Please try again later."
	msgUnknownCommand      = "Unknown command. Try /play, /score, /quit or /help."
	msgInsufficientContent = "The game is being restocked with questions. Please check back later!"
	msgNoActiveGame        = "You have no game in progress. Start one with /play."
	msgGameAbandoned       = "Game abandoned. No points awarded — finish a game next time to earn the bonus!"
	msgNotYourGame         = "That game belongs to someone else."
	msgGameAlreadyOver     = "That game is already over. Start a new one with /play."
)

// formatQuestion renders a question with its four options.
func formatQuestion(q *entities.GameQuestion, s *entities.GameSession) string {
	var b strings.Builder

	fmt.Fprintf(&b, "❓ <b>Question %d of %d</b> (%d points)\n\n", s.QuestionsAnswered+1, s.TotalQuestions, q.Points)
	b.WriteString(q.Text)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "A. %s\n", q.OptionA)
	fmt.Fprintf(&b, "B. %s\n", q.OptionB)
	fmt.Fprintf(&b, "C. %s\n", q.OptionC)
	fmt.Fprintf(&b, "D. %s", q.OptionD)

	return b.String()
}

// formatAnswerFeedback renders the verdict for a submitted answer.
func formatAnswerFeedback(q *entities.GameQuestion, correct bool, pointsEarned int) string {
	var b strings.Builder

	if correct {
		fmt.Fprintf(&b, "✅ Correct! +%d points", pointsEarned)
	} else {
		fmt.Fprintf(&b, "❌ Wrong. The right answer was %s. %s", q.CorrectAnswer, q.Option(q.CorrectAnswer))
	}

	if q.Explanation != "" {
		b.WriteString("\n\n💡 ")
		b.WriteString(q.Explanation)
	}

	return b.String()
}

// formatGameSummary renders the completion screen for a finished session.
func formatGameSummary(s *entities.GameSession) string {
	var b strings.Builder

	b.WriteString("🏁 <b>Game over!</b>\n\n")
	fmt.Fprintf(&b, "Score: <b>%d</b>\n", s.CurrentScore)
	fmt.Fprintf(&b, "Correct answers: %d of %d (%.0f%%)\n", s.CorrectAnswers, s.QuestionsAnswered, s.AccuracyPercentage())
	fmt.Fprintf(&b, "Loyalty points earned: <b>%d</b>\n\n", s.PointsAwarded)
	b.WriteString("Play again with /play")

	return b.String()
}

// formatScore renders the user's ledger totals.
func formatScore(u *entities.User) string {
	return fmt.Sprintf(
		"🏆 <b>Your loyalty stats</b>\n\nPoints: <b>%d</b>\nBest game score: <b>%d</b>",
		u.CustomerPoints, u.HighestGameScore,
	)
}
