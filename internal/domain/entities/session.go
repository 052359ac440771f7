package entities

import (
	"time"
)

// DefaultTotalQuestions is the game length used when the caller does not ask
// for a specific one.
const DefaultTotalQuestions = 10

// GameSession is one played round of the trivia game.
// It tracks score, progress, the questions already served and the lifecycle
// from start to completion. At most one incomplete session exists per user.
type GameSession struct {
	ID                int64
	UserID            int64
	StartedAt         time.Time
	EndedAt           *time.Time // nil until the session completes
	CurrentScore      int
	QuestionsAnswered int
	CorrectAnswers    int
	TotalQuestions    int
	Completed         bool
	PointsAwarded     int     // loyalty points credited to the user, set once at completion
	AskedQuestionIDs  []int64 // ids already served in this session, no duplicates
	Version           int     // optimistic locking version
}

// NewGameSession creates an active session for a user. A totalQuestions below
// one falls back to the default game length.
func NewGameSession(userID int64, totalQuestions int) *GameSession {
	if totalQuestions < 1 {
		totalQuestions = DefaultTotalQuestions
	}

	return &GameSession{
		UserID:         userID,
		StartedAt:      time.Now(),
		TotalQuestions: totalQuestions,
	}
}

// AccuracyPercentage returns the share of correct answers in percent,
// 0.0 when nothing has been answered yet.
func (s *GameSession) AccuracyPercentage() float64 {
	if s.QuestionsAnswered == 0 {
		return 0.0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered) * 100.0
}

// IsGameOver reports whether the session accepts no further answers.
func (s *GameSession) IsGameOver() bool {
	return s.Completed || s.QuestionsAnswered >= s.TotalQuestions
}

// RemainingQuestions returns how many questions are still to be answered.
func (s *GameSession) RemainingQuestions() int {
	remaining := s.TotalQuestions - s.QuestionsAnswered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AddCorrectAnswer records a correct answer worth the given points.
func (s *GameSession) AddCorrectAnswer(points int) {
	s.QuestionsAnswered++
	s.CorrectAnswers++
	s.CurrentScore += points
}

// AddIncorrectAnswer records a wrong answer.
func (s *GameSession) AddIncorrectAnswer() {
	s.QuestionsAnswered++
}

// HasAsked reports whether a question id was already served in this session.
func (s *GameSession) HasAsked(questionID int64) bool {
	for _, id := range s.AskedQuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// AddAskedQuestion records a served question id. Duplicate ids are ignored so
// the asked set never repeats.
func (s *GameSession) AddAskedQuestion(questionID int64) {
	if s.HasAsked(questionID) {
		return
	}
	s.AskedQuestionIDs = append(s.AskedQuestionIDs, questionID)
}

// Complete marks the session as finished with the given loyalty points award.
// Calling it on an already completed session changes nothing.
func (s *GameSession) Complete(pointsAwarded int) {
	if s.Completed {
		return
	}

	now := time.Now()
	s.Completed = true
	s.EndedAt = &now
	s.PointsAwarded = pointsAwarded
}

// Duration returns how long the session has been (or was) running.
func (s *GameSession) Duration() time.Duration {
	if s.EndedAt == nil {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}
