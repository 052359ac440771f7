package service

import "github.com/galdrimer/loyalty-trivia/internal/domain/entities"

const (
	// completionBasePoints is awarded for finishing a game regardless of accuracy.
	completionBasePoints = 20

	// minQuestionBankSize is how many active questions the bank must hold
	// before a new game may start.
	minQuestionBankSize = 5
)

// PointsForCorrectAnswer returns the score value of a correct answer.
func PointsForCorrectAnswer(q *entities.GameQuestion) int {
	return q.Points
}

// CompletionBonus returns the loyalty points awarded for completing a session:
// a flat participation base plus one point per full 10% of answer accuracy.
// The accuracy part is therefore always in the 0-10 range.
func CompletionBonus(s *entities.GameSession) int {
	return completionBasePoints + int(s.AccuracyPercentage()/10)
}

// ForcedTerminationPoints returns the award for a session ended outside the
// normal completion path. Abandonment (awardFull=false) earns nothing;
// admin-forced completion that still credits the player earns the full bonus.
func ForcedTerminationPoints(s *entities.GameSession, awardFull bool) int {
	if !awardFull {
		return 0
	}
	return CompletionBonus(s)
}
