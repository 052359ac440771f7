package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
)

var ErrQuestionNotFound = errors.New("game question not found")

// QuestionRepository provides read access to the trivia question bank.
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository with the provided database pool.
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `
	id, question_text, option_a, option_b, option_c, option_d,
	correct_answer, points, difficulty_level, is_active, explanation, created_at
`

func scanQuestion(row pgx.Row) (*entities.GameQuestion, error) {
	var q entities.GameQuestion
	err := row.Scan(
		&q.ID,
		&q.Text,
		&q.OptionA,
		&q.OptionB,
		&q.OptionC,
		&q.OptionD,
		&q.CorrectAnswer,
		&q.Points,
		&q.Difficulty,
		&q.Active,
		&q.Explanation,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetByID retrieves a question by id.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*entities.GameQuestion, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM game_questions
		WHERE id = $1
	`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return q, nil
}

// SampleActiveExcluding returns up to limit random active questions whose id
// is not in excludeIDs. Fewer rows than requested (or none) means the bank is
// exhausted for this session; that is not an error.
func (r *QuestionRepository) SampleActiveExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]*entities.GameQuestion, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM game_questions
		WHERE is_active = true AND NOT (id = ANY($1))
		ORDER BY random()
		LIMIT $2
	`

	if excludeIDs == nil {
		excludeIDs = []int64{}
	}

	rows, err := r.db.Query(ctx, query, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("sample active questions: %w", err)
	}
	defer rows.Close()

	var questions []*entities.GameQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sample active questions: %w", err)
	}

	return questions, nil
}

// CountActive returns how many active questions the bank holds.
func (r *QuestionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM game_questions WHERE is_active = true").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active questions: %w", err)
	}

	return count, nil
}

// Insert stores a new question and returns its id. Used only by the seeder;
// question content is otherwise managed outside this service.
func (r *QuestionRepository) Insert(ctx context.Context, q *entities.GameQuestion) (int64, error) {
	query := `
		INSERT INTO game_questions (
			question_text, option_a, option_b, option_c, option_d,
			correct_answer, points, difficulty_level, is_active, explanation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		q.Text,
		q.OptionA,
		q.OptionB,
		q.OptionC,
		q.OptionD,
		q.CorrectAnswer,
		q.Points,
		q.Difficulty,
		q.Active,
		q.Explanation,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}

	return id, nil
}
