package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

// QuestionRepository is the question bank boundary. Sampling excludes the ids
// already served in a session; returning fewer questions than requested is the
// "bank exhausted" signal, not an error.
type QuestionRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.GameQuestion, error)
	SampleActiveExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]*entities.GameQuestion, error)
	CountActive(ctx context.Context) (int64, error)
	Insert(ctx context.Context, q *entities.GameQuestion) (int64, error)
}

// SessionRepository is the session persistence boundary. The WithTx methods
// run inside a transaction opened by the Transactor; GetForUpdate variants
// take a row-level lock so concurrent operations on one session serialize.
type SessionRepository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) (int64, error)
	UpdateWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) error
	GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id int64) (*entities.GameSession, error)
	GetActiveForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID int64) (*entities.GameSession, error)
	GetByID(ctx context.Context, id int64) (*entities.GameSession, error)
	GetActiveByUserID(ctx context.Context, userID int64) (*entities.GameSession, error)
	CompleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserRepository is the user directory boundary.
type UserRepository interface {
	SaveUser(ctx context.Context, user *entities.User) error
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	ApplyGameResultWithTx(ctx context.Context, tx pgx.Tx, userID int64, points, score int) error
}

// Ledger propagates a completed session's result into the user's cumulative
// points and high score.
type Ledger interface {
	ApplyCompletionWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) error
}

// Transactor runs fn atomically. Session mutations and the ledger write they
// trigger commit or roll back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
