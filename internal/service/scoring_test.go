package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

func TestPointsForCorrectAnswer(t *testing.T) {
	q := &entities.GameQuestion{Points: 15}
	assert.Equal(t, 15, PointsForCorrectAnswer(q))
}

func TestCompletionBonus(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		answered int
		want     int
	}{
		{"perfect game", 10, 10, 30},
		{"sixty percent accuracy", 6, 10, 26},
		{"nothing answered", 0, 0, 20},
		{"all wrong", 0, 10, 20},
		{"partial accuracy rounds down", 3, 7, 24}, // 42.86% -> 4 bonus
		{"short game", 2, 3, 26},                   // 66.67% -> 6 bonus
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &entities.GameSession{
				CorrectAnswers:    tt.correct,
				QuestionsAnswered: tt.answered,
			}
			assert.Equal(t, tt.want, CompletionBonus(s))
		})
	}
}

func TestForcedTerminationPoints(t *testing.T) {
	s := &entities.GameSession{CorrectAnswers: 6, QuestionsAnswered: 10}

	assert.Equal(t, 0, ForcedTerminationPoints(s, false))
	assert.Equal(t, 26, ForcedTerminationPoints(s, true))
}
