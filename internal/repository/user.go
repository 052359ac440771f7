package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to loyalty program members. The game service
// only touches the id, username and the points ledger fields; the full
// customer profile is owned by another system.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser inserts a new user or refreshes an existing one.
func (r *UserRepository) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, username, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			is_active = EXCLUDED.is_active
	`

	_, err := r.db.Exec(ctx, query, user.ID, user.Username, user.IsActive, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

// UserExists checks if a user with the given ID exists in the database.
func (r *UserRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"

	var exists bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, username, customer_points, highest_game_score, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.CustomerPoints,
		&user.HighestGameScore,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// ApplyGameResultWithTx credits loyalty points and raises the highest game
// score where beaten, inside the transaction that completes the session.
func (r *UserRepository) ApplyGameResultWithTx(ctx context.Context, tx pgx.Tx, userID int64, points, score int) error {
	query := `
		UPDATE users
		SET customer_points = customer_points + $2,
		    highest_game_score = GREATEST(highest_game_score, $3)
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, userID, points, score)
	if err != nil {
		return fmt.Errorf("apply game result: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
