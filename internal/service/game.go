package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
	"github.com/galdrimer/loyalty-trivia/internal/repository"
)

// ErrInsufficientContent means the question bank is too small to start a game.
var ErrInsufficientContent = errors.New("not enough active questions to start a game")

// AnswerResult describes what a submitted answer did to the session.
type AnswerResult struct {
	Accepted     bool // false when the session was already complete and the answer was ignored
	Correct      bool
	PointsEarned int
	Question     *entities.GameQuestion
	Session      *entities.GameSession
	GameOver     bool
}

// GameService is the trivia session engine. It owns the session lifecycle:
// starting games, serving non-repeating questions, scoring answers and ending
// sessions through the normal, logout and admin paths. All session mutations
// run inside a transaction with the session row locked, so concurrent calls
// on one session serialize and completion happens exactly once.
type GameService struct {
	questions QuestionRepository
	sessions  SessionRepository
	ledger    Ledger
	tx        Transactor
	logger    *zap.Logger
}

func NewGameService(
	questions QuestionRepository,
	sessions SessionRepository,
	ledger Ledger,
	tx Transactor,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		questions: questions,
		sessions:  sessions,
		ledger:    ledger,
		tx:        tx,
		logger:    logger,
	}
}

// StartNewGame creates a fresh active session for the user. A leftover
// incomplete session is first closed with zero award. Fails with
// ErrInsufficientContent when the bank holds fewer active questions than the
// minimum. If a concurrent start wins the race, the winner's session is
// returned instead of a second one.
func (s *GameService) StartNewGame(ctx context.Context, userID int64, totalQuestions int) (*entities.GameSession, error) {
	count, err := s.questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if count < minQuestionBankSize {
		return nil, ErrInsufficientContent
	}

	var session *entities.GameSession
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		existing, err := s.sessions.GetActiveForUpdateWithTx(ctx, tx, userID)
		if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
			return err
		}

		// A stale active session means the previous game was walked away
		// from; close it without any award before starting over.
		if existing != nil {
			if err := s.completeWithTx(ctx, tx, existing, 0, false); err != nil {
				return err
			}
			s.logger.Info("closed leftover session before new game",
				zap.Int64("user_id", userID),
				zap.Int64("session_id", existing.ID),
			)
		}

		session = entities.NewGameSession(userID, totalQuestions)
		id, err := s.sessions.CreateWithTx(ctx, tx, session)
		if err != nil {
			return err
		}
		session.ID = id

		return nil
	})
	if errors.Is(err, repository.ErrActiveSessionExists) {
		// Lost the race against a concurrent start; reuse the winner's session.
		return s.sessions.GetActiveByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("game started",
		zap.Int64("user_id", userID),
		zap.Int64("session_id", session.ID),
		zap.Int("total_questions", session.TotalQuestions),
	)

	return session, nil
}

// GetCurrentSession returns the user's active session, or
// repository.ErrSessionNotFound when there is none.
func (s *GameService) GetCurrentSession(ctx context.Context, userID int64) (*entities.GameSession, error) {
	return s.sessions.GetActiveByUserID(ctx, userID)
}

// GetSessionByID returns a session regardless of its state, or
// repository.ErrSessionNotFound for an unknown id.
func (s *GameService) GetSessionByID(ctx context.Context, sessionID int64) (*entities.GameSession, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

// HasActiveSession reports whether the user has an incomplete session.
func (s *GameService) HasActiveSession(ctx context.Context, userID int64) (bool, error) {
	_, err := s.sessions.GetActiveByUserID(ctx, userID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CanStartNewGame reports whether the user may start a game right now: no
// active session and a sufficiently stocked question bank.
func (s *GameService) CanStartNewGame(ctx context.Context, userID int64) (bool, error) {
	active, err := s.HasActiveSession(ctx, userID)
	if err != nil || active {
		return false, err
	}

	count, err := s.questions.CountActive(ctx)
	if err != nil {
		return false, err
	}

	return count >= minQuestionBankSize, nil
}

// GetNextQuestion draws a random question that has not yet been served in
// this session. When the bank has no unseen active questions left, the
// session completes with the full bonus and no question is returned. A
// completed session returns no question and stays unchanged.
func (s *GameService) GetNextQuestion(ctx context.Context, sessionID int64) (*entities.GameQuestion, *entities.GameSession, error) {
	var (
		question *entities.GameQuestion
		session  *entities.GameSession
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		session, err = s.sessions.GetForUpdateWithTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		if session.Completed {
			return nil
		}
		if session.IsGameOver() {
			// All answers are in but the session is still open; finish it.
			return s.completeWithTx(ctx, tx, session, CompletionBonus(session), true)
		}

		drawn, err := s.questions.SampleActiveExcluding(ctx, session.AskedQuestionIDs, 1)
		if err != nil {
			return err
		}

		if len(drawn) == 0 {
			// Bank exhausted for this session. That is a natural end, not an
			// error: complete with the full bonus for what was answered.
			s.logger.Info("question bank exhausted, ending session",
				zap.Int64("session_id", session.ID),
				zap.Int("questions_answered", session.QuestionsAnswered),
			)
			return s.completeWithTx(ctx, tx, session, CompletionBonus(session), true)
		}

		question = drawn[0]
		session.AddAskedQuestion(question.ID)

		return s.sessions.UpdateWithTx(ctx, tx, session)
	})
	if err != nil {
		return nil, nil, err
	}

	return question, session, nil
}

// SubmitAnswer scores an answer against the question's correct letter and
// updates the session. Correctness ignores case and whitespace. Once the
// configured number of questions has been answered the session completes and
// the bonus is credited. Submitting to a completed session is a no-op.
//
// The question id is looked up but deliberately not checked against the
// session's asked set; clients are trusted to answer the question they were
// served, matching the long-standing game behavior.
func (s *GameService) SubmitAnswer(ctx context.Context, sessionID, questionID int64, answer string) (*AnswerResult, error) {
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{Question: question}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		session, err := s.sessions.GetForUpdateWithTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		result.Session = session

		if session.IsGameOver() {
			result.GameOver = true
			return nil
		}

		result.Accepted = true
		result.Correct = question.IsCorrectAnswer(answer)
		if result.Correct {
			result.PointsEarned = PointsForCorrectAnswer(question)
			session.AddCorrectAnswer(result.PointsEarned)
		} else {
			session.AddIncorrectAnswer()
		}

		if session.QuestionsAnswered >= session.TotalQuestions {
			result.GameOver = true
			return s.completeWithTx(ctx, tx, session, CompletionBonus(session), true)
		}

		return s.sessions.UpdateWithTx(ctx, tx, session)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EndGame completes a session through the normal path: the completion bonus
// becomes the awarded points and the user's ledger is updated. Idempotent; a
// second call changes nothing.
func (s *GameService) EndGame(ctx context.Context, sessionID int64) (*entities.GameSession, error) {
	var session *entities.GameSession

	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		session, err = s.sessions.GetForUpdateWithTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		return s.completeWithTx(ctx, tx, session, CompletionBonus(session), true)
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// ForceEndOnLogout closes the user's active session with zero award when they
// log out mid-game. Walking away earns nothing: the bonus is skipped and the
// ledger and high score stay untouched. Never returns an error; logout has to
// proceed whatever happens here, so failures are logged and swallowed.
func (s *GameService) ForceEndOnLogout(ctx context.Context, userID int64) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		session, err := s.sessions.GetActiveForUpdateWithTx(ctx, tx, userID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.completeWithTx(ctx, tx, session, 0, false); err != nil {
			return err
		}

		s.logger.Info("session abandoned on logout",
			zap.Int64("user_id", userID),
			zap.Int64("session_id", session.ID),
			zap.Int("forfeited_score", session.CurrentScore),
		)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to end session on logout",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// ForceEndByAdmin completes a stuck session on behalf of an administrator.
// With awardPoints the player is credited as if the game ended normally;
// without it the session closes with zero award and no ledger update.
// Already completed sessions are left as they are.
func (s *GameService) ForceEndByAdmin(ctx context.Context, sessionID int64, awardPoints bool) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		session, err := s.sessions.GetForUpdateWithTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		award := ForcedTerminationPoints(session, awardPoints)
		return s.completeWithTx(ctx, tx, session, award, awardPoints)
	})
	if err != nil {
		return fmt.Errorf("force end session %d: %w", sessionID, err)
	}

	return nil
}

// CleanupStaleSessions zero-award-completes sessions that have been sitting
// incomplete for longer than maxAge and returns how many were closed.
func (s *GameService) CleanupStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	closed, err := s.sessions.CompleteStale(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	if closed > 0 {
		s.logger.Info("closed stale sessions", zap.Int64("count", closed))
	}

	return closed, nil
}

// completeWithTx is the single place a session transitions to the terminal
// state. No-op when already complete, so every termination path is idempotent
// and the ledger is credited at most once.
func (s *GameService) completeWithTx(ctx context.Context, tx pgx.Tx, session *entities.GameSession, award int, syncLedger bool) error {
	if session.Completed {
		return nil
	}

	session.Complete(award)
	if err := s.sessions.UpdateWithTx(ctx, tx, session); err != nil {
		return err
	}

	if syncLedger {
		if err := s.ledger.ApplyCompletionWithTx(ctx, tx, session); err != nil {
			return err
		}
	}

	s.logger.Info("session completed",
		zap.Int64("session_id", session.ID),
		zap.Int("score", session.CurrentScore),
		zap.Int("points_awarded", session.PointsAwarded),
	)

	return nil
}
