package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

func TestFormatQuestion(t *testing.T) {
	q := &entities.GameQuestion{
		Text:    "What color is the logo?",
		OptionA: "Green",
		OptionB: "Red",
		OptionC: "Blue",
		OptionD: "Black",
		Points:  10,
	}
	s := &entities.GameSession{QuestionsAnswered: 2, TotalQuestions: 10}

	text := formatQuestion(q, s)
	assert.Contains(t, text, "Question 3 of 10")
	assert.Contains(t, text, "What color is the logo?")
	assert.Contains(t, text, "A. Green")
	assert.Contains(t, text, "D. Black")
}

func TestFormatAnswerFeedback(t *testing.T) {
	q := &entities.GameQuestion{
		OptionB:       "1992",
		CorrectAnswer: "B",
		Explanation:   "The first store opened in 1992.",
	}

	correct := formatAnswerFeedback(q, true, 10)
	assert.Contains(t, correct, "Correct")
	assert.Contains(t, correct, "+10")
	assert.Contains(t, correct, "1992.")

	wrong := formatAnswerFeedback(q, false, 0)
	assert.Contains(t, wrong, "Wrong")
	assert.Contains(t, wrong, "B. 1992")
}

func TestFormatGameSummary(t *testing.T) {
	s := &entities.GameSession{
		CurrentScore:      60,
		CorrectAnswers:    6,
		QuestionsAnswered: 10,
		TotalQuestions:    10,
		Completed:         true,
		PointsAwarded:     26,
	}

	text := formatGameSummary(s)
	assert.Contains(t, text, "60")
	assert.Contains(t, text, "6 of 10")
	assert.Contains(t, text, "60%")
	assert.Contains(t, text, "26")
}
