package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

// LedgerService applies a completed session's result to the user's persistent
// points ledger. Only award paths call it; abandoned sessions never touch the
// ledger.
type LedgerService struct {
	users UserRepository
}

func NewLedgerService(users UserRepository) *LedgerService {
	return &LedgerService{users: users}
}

// ApplyCompletionWithTx credits the session's awarded points and raises the
// user's highest game score if the session score beats it. Runs inside the
// transaction that completed the session.
func (s *LedgerService) ApplyCompletionWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) error {
	return s.users.ApplyGameResultWithTx(ctx, tx, session.UserID, session.PointsAwarded, session.CurrentScore)
}
