package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameSessionDefaultsLength(t *testing.T) {
	s := NewGameSession(1, 0)
	assert.Equal(t, DefaultTotalQuestions, s.TotalQuestions)

	s = NewGameSession(1, -3)
	assert.Equal(t, DefaultTotalQuestions, s.TotalQuestions)

	s = NewGameSession(1, 5)
	assert.Equal(t, 5, s.TotalQuestions)
}

func TestAccuracyPercentage(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		answered int
		want     float64
	}{
		{"nothing answered", 0, 0, 0.0},
		{"all correct", 10, 10, 100.0},
		{"none correct", 0, 10, 0.0},
		{"sixty percent", 6, 10, 60.0},
		{"one of three", 1, 3, 100.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &GameSession{CorrectAnswers: tt.correct, QuestionsAnswered: tt.answered}
			assert.InDelta(t, tt.want, s.AccuracyPercentage(), 1e-9)
		})
	}
}

func TestAddAskedQuestionIgnoresDuplicates(t *testing.T) {
	s := NewGameSession(1, 10)

	s.AddAskedQuestion(3)
	s.AddAskedQuestion(7)
	s.AddAskedQuestion(3)
	s.AddAskedQuestion(7)
	s.AddAskedQuestion(5)

	assert.Equal(t, []int64{3, 7, 5}, s.AskedQuestionIDs)
	assert.True(t, s.HasAsked(3))
	assert.True(t, s.HasAsked(5))
	assert.False(t, s.HasAsked(4))
}

func TestAnswerCounters(t *testing.T) {
	s := NewGameSession(1, 10)

	s.AddCorrectAnswer(10)
	s.AddCorrectAnswer(15)
	s.AddIncorrectAnswer()

	assert.Equal(t, 3, s.QuestionsAnswered)
	assert.Equal(t, 2, s.CorrectAnswers)
	assert.Equal(t, 25, s.CurrentScore)
}

func TestIsGameOver(t *testing.T) {
	s := NewGameSession(1, 2)
	assert.False(t, s.IsGameOver())

	s.AddIncorrectAnswer()
	assert.False(t, s.IsGameOver())
	assert.Equal(t, 1, s.RemainingQuestions())

	s.AddCorrectAnswer(10)
	assert.True(t, s.IsGameOver())
	assert.Equal(t, 0, s.RemainingQuestions())
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := NewGameSession(1, 10)

	s.Complete(26)
	require.True(t, s.Completed)
	require.NotNil(t, s.EndedAt)
	firstEnd := *s.EndedAt

	s.Complete(99)
	assert.Equal(t, 26, s.PointsAwarded)
	assert.Equal(t, firstEnd, *s.EndedAt)
}

func TestIsCorrectAnswerNormalizes(t *testing.T) {
	q := &GameQuestion{CorrectAnswer: "B"}

	assert.True(t, q.IsCorrectAnswer("B"))
	assert.True(t, q.IsCorrectAnswer("b"))
	assert.True(t, q.IsCorrectAnswer("  b  "))
	assert.False(t, q.IsCorrectAnswer("A"))
	assert.False(t, q.IsCorrectAnswer(""))
}

func TestQuestionOption(t *testing.T) {
	q := &GameQuestion{OptionA: "one", OptionB: "two", OptionC: "three", OptionD: "four"}

	assert.Equal(t, "two", q.Option("b"))
	assert.Equal(t, "four", q.Option(" D "))
	assert.Equal(t, "", q.Option("E"))
}
