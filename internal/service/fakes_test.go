package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/galdrimer/loyalty-trivia/internal/domain/entities"
	"github.com/galdrimer/loyalty-trivia/internal/repository"
)

// The fakes below mirror the Postgres repositories closely enough for the
// engine tests: sessions round-trip through clones (like rows), updates check
// the version column, and creating a second active session for one user fails
// the same way the partial unique index makes it fail.

type memTransactor struct {
	mu sync.Mutex
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx, nil)
}

type memQuestionRepo struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]*entities.GameQuestion
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: make(map[int64]*entities.GameQuestion)}
}

func (r *memQuestionRepo) Insert(_ context.Context, q *entities.GameQuestion) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *q
	stored.ID = r.nextID
	r.questions[stored.ID] = &stored
	return stored.ID, nil
}

func (r *memQuestionRepo) GetByID(_ context.Context, id int64) (*entities.GameQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	return q, nil
}

func (r *memQuestionRepo) SampleActiveExcluding(_ context.Context, excludeIDs []int64, limit int) ([]*entities.GameQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[int64]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var pool []*entities.GameQuestion
	for _, q := range r.questions {
		if q.Active && !excluded[q.ID] {
			pool = append(pool, q)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (r *memQuestionRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, q := range r.questions {
		if q.Active {
			count++
		}
	}
	return count, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*entities.GameSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[int64]*entities.GameSession)}
}

func cloneSession(s *entities.GameSession) *entities.GameSession {
	c := *s
	c.AskedQuestionIDs = append([]int64(nil), s.AskedQuestionIDs...)
	if s.EndedAt != nil {
		ended := *s.EndedAt
		c.EndedAt = &ended
	}
	return &c
}

func (r *memSessionRepo) CreateWithTx(_ context.Context, _ pgx.Tx, session *entities.GameSession) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.UserID == session.UserID && !existing.Completed {
			return 0, repository.ErrActiveSessionExists
		}
	}

	r.nextID++
	stored := cloneSession(session)
	stored.ID = r.nextID
	r.sessions[stored.ID] = stored
	return stored.ID, nil
}

func (r *memSessionRepo) UpdateWithTx(_ context.Context, _ pgx.Tx, session *entities.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[session.ID]
	if !ok {
		return repository.ErrSessionNotFound
	}
	if current.Version != session.Version {
		return repository.ErrOptimisticLock
	}

	session.Version++
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, id int64) (*entities.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *memSessionRepo) GetForUpdateWithTx(ctx context.Context, _ pgx.Tx, id int64) (*entities.GameSession, error) {
	return r.GetByID(ctx, id)
}

func (r *memSessionRepo) GetActiveByUserID(_ context.Context, userID int64) (*entities.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.UserID == userID && !s.Completed {
			return cloneSession(s), nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (r *memSessionRepo) GetActiveForUpdateWithTx(ctx context.Context, _ pgx.Tx, userID int64) (*entities.GameSession, error) {
	return r.GetActiveByUserID(ctx, userID)
}

func (r *memSessionRepo) CompleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var closed int64
	for _, s := range r.sessions {
		if !s.Completed && s.StartedAt.Before(cutoff) {
			s.Complete(0)
			s.PointsAwarded = 0
			s.Version++
			closed++
		}
	}
	return closed, nil
}

func (r *memSessionRepo) activeCountForUser(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, s := range r.sessions {
		if s.UserID == userID && !s.Completed {
			count++
		}
	}
	return count
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[int64]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entities.User)}
}

func (r *memUserRepo) SaveUser(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *memUserRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[userID]
	return ok, nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) ApplyGameResultWithTx(_ context.Context, _ pgx.Tx, userID int64, points, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AddCustomerPoints(points)
	u.UpdateHighestScore(score)
	return nil
}
