package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

var ErrInvalidQuestionFile = errors.New("invalid question file")

type questionJSON struct {
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Points        int    `json:"points"`
	Difficulty    int    `json:"difficulty"`
	Explanation   string `json:"explanation"`
}

// LoadQuestionsFromFile reads the bundled question set used to seed an empty
// question bank. Each entry must have a non-empty text and a correct answer
// letter among A-D; points default to 10 and difficulty to 1.
func LoadQuestionsFromFile(path string) ([]*entities.GameQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var raw []questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question file: %w", err)
	}

	questions := make([]*entities.GameQuestion, 0, len(raw))
	for i, q := range raw {
		letter := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		if q.Text == "" || (letter != "A" && letter != "B" && letter != "C" && letter != "D") {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidQuestionFile, i)
		}

		points := q.Points
		if points <= 0 {
			points = 10
		}
		difficulty := q.Difficulty
		if difficulty < 1 || difficulty > 3 {
			difficulty = 1
		}

		questions = append(questions, &entities.GameQuestion{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: letter,
			Points:        points,
			Difficulty:    difficulty,
			Active:        true,
			Explanation:   q.Explanation,
		})
	}

	return questions, nil
}
