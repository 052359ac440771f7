package service

import (
	"context"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact; existing users are left alone.
func (s *UserService) EnsureUser(ctx context.Context, userID int64, username string) error {
	exists, err := s.repository.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.repository.SaveUser(ctx, entities.NewUser(userID, username))
}

// GetByID returns the user with their current points ledger.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	return s.repository.GetByID(ctx, userID)
}
