package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/galdrimer/loyalty-trivia/internal/repository"
)

// ContentService seeds the question bank from the bundled asset file when the
// bank is empty, so a fresh deployment can serve games right away. Ongoing
// question management belongs to the content team, not this service.
type ContentService struct {
	questions QuestionRepository
	logger    *zap.Logger
}

func NewContentService(questions QuestionRepository, logger *zap.Logger) *ContentService {
	return &ContentService{questions: questions, logger: logger}
}

// SeedIfEmpty loads questions from path into an empty bank. Returns how many
// questions were inserted; zero when the bank already has content.
func (s *ContentService) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	count, err := s.questions.CountActive(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	loaded, err := repository.LoadQuestionsFromFile(path)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, q := range loaded {
		if _, err := s.questions.Insert(ctx, q); err != nil {
			return inserted, err
		}
		inserted++
	}

	s.logger.Info("seeded question bank",
		zap.String("path", path),
		zap.Int("questions", inserted),
	)

	return inserted, nil
}
