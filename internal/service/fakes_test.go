package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/repository"
)

// memoryUserRepo is an in-memory repository.UserRepository for tests.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// memoryActionTokenRepo is an in-memory repository.ActionTokenRepository.
type memoryActionTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.ActionToken
}

func newMemoryActionTokenRepo() *memoryActionTokenRepo {
	return &memoryActionTokenRepo{tokens: make(map[string]*repository.ActionToken)}
}

func (r *memoryActionTokenRepo) Create(_ context.Context, token *repository.ActionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *memoryActionTokenRepo) GetByToken(_ context.Context, kind repository.ActionTokenKind, tokenStr string) (*repository.ActionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.Kind == kind && token.Token == tokenStr {
			cp := *token
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryActionTokenRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

// lastToken returns the most recently created token of the given kind.
func (r *memoryActionTokenRepo) lastToken(kind repository.ActionTokenKind) *repository.ActionToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *repository.ActionToken
	for _, token := range r.tokens {
		if token.Kind != kind {
			continue
		}
		if latest == nil || token.CreatedAt.After(latest.CreatedAt) {
			latest = token
		}
	}
	return latest
}
