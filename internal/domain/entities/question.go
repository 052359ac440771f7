package entities

import (
	"strings"
	"time"
)

// GameQuestion is a single multiple-choice trivia item. Questions are managed
// by the content team; the game engine only ever reads active ones.
type GameQuestion struct {
	ID            int64
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string // answer letter: "A", "B", "C" or "D"
	Points        int    // points for a correct answer, default 10
	Difficulty    int    // 1 (easy) to 3 (hard)
	Active        bool
	Explanation   string // optional, shown after answering
	CreatedAt     time.Time
}

// Option returns the option text for an answer letter, or "" for an
// unknown letter.
func (q *GameQuestion) Option(letter string) string {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

// IsCorrectAnswer reports whether the given answer letter matches the correct
// one. Comparison ignores case and surrounding whitespace.
func (q *GameQuestion) IsCorrectAnswer(answer string) bool {
	return strings.EqualFold(
		strings.TrimSpace(answer),
		strings.TrimSpace(q.CorrectAnswer),
	)
}
