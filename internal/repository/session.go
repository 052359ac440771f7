package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

var (
	ErrSessionNotFound     = errors.New("game session not found")
	ErrOptimisticLock      = errors.New("game session was modified by another process")
	ErrActiveSessionExists = errors.New("user already has an active game session")
)

// SessionRepository provides access to game session data in the database.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository with the provided database pool.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, user_id, started_at, ended_at, current_score, questions_answered,
	correct_answers, total_questions, is_completed, points_awarded,
	asked_question_ids, version
`

func scanSession(row pgx.Row) (*entities.GameSession, error) {
	var s entities.GameSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.StartedAt,
		&s.EndedAt,
		&s.CurrentScore,
		&s.QuestionsAnswered,
		&s.CorrectAnswers,
		&s.TotalQuestions,
		&s.Completed,
		&s.PointsAwarded,
		&s.AskedQuestionIDs,
		&s.Version,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateWithTx inserts a new session within a transaction and returns its id.
// A partial unique index on (user_id) for incomplete sessions backs up the
// one-active-session invariant; a violation maps to ErrActiveSessionExists.
func (r *SessionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) (int64, error) {
	query := `
		INSERT INTO game_sessions (
			user_id, started_at, current_score, questions_answered,
			correct_answers, total_questions, is_completed, points_awarded,
			asked_question_ids, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	askedIDs := session.AskedQuestionIDs
	if askedIDs == nil {
		askedIDs = []int64{}
	}

	var id int64
	err := tx.QueryRow(
		ctx,
		query,
		session.UserID,
		session.StartedAt,
		session.CurrentScore,
		session.QuestionsAnswered,
		session.CorrectAnswers,
		session.TotalQuestions,
		session.Completed,
		session.PointsAwarded,
		askedIDs,
		session.Version,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrActiveSessionExists
		}
		return 0, fmt.Errorf("create game session: %w", err)
	}

	return id, nil
}

// GetByID retrieves a session by id.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*entities.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE id = $1
	`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get game session: %w", err)
	}

	return session, nil
}

// GetActiveByUserID retrieves the user's incomplete session, if any.
func (r *SessionRepository) GetActiveByUserID(ctx context.Context, userID int64) (*entities.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE user_id = $1 AND is_completed = false
		ORDER BY started_at DESC
		LIMIT 1
	`

	session, err := scanSession(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get active game session: %w", err)
	}

	return session, nil
}

// GetForUpdateWithTx retrieves a session by id with a row-level lock.
func (r *SessionRepository) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id int64) (*entities.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE id = $1
		FOR UPDATE
	`

	session, err := scanSession(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session for update: %w", err)
	}

	return session, nil
}

// GetActiveForUpdateWithTx retrieves the user's incomplete session with a
// row-level lock, serializing concurrent starts and submissions for one user.
func (r *SessionRepository) GetActiveForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID int64) (*entities.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE user_id = $1 AND is_completed = false
		ORDER BY started_at DESC
		LIMIT 1
		FOR UPDATE
	`

	session, err := scanSession(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get active session for update: %w", err)
	}

	return session, nil
}

// UpdateWithTx persists session state using optimistic locking.
func (r *SessionRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession) error {
	query := `
		UPDATE game_sessions
		SET ended_at = $1,
		    current_score = $2,
		    questions_answered = $3,
		    correct_answers = $4,
		    is_completed = $5,
		    points_awarded = $6,
		    asked_question_ids = $7,
		    version = version + 1
		WHERE id = $8 AND version = $9
	`

	askedIDs := session.AskedQuestionIDs
	if askedIDs == nil {
		askedIDs = []int64{}
	}

	result, err := tx.Exec(
		ctx,
		query,
		session.EndedAt,
		session.CurrentScore,
		session.QuestionsAnswered,
		session.CorrectAnswers,
		session.Completed,
		session.PointsAwarded,
		askedIDs,
		session.ID,
		session.Version,
	)
	if err != nil {
		return fmt.Errorf("update game session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOptimisticLock
	}

	// Increment version locally
	session.Version++

	return nil
}

// CompleteStale zero-award-completes incomplete sessions started before the
// cutoff and returns how many were closed. Used by administrative cleanup.
func (r *SessionRepository) CompleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE game_sessions
		SET is_completed = true,
		    ended_at = now(),
		    points_awarded = 0,
		    version = version + 1
		WHERE is_completed = false AND started_at < $1
	`

	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("complete stale sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
