package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

const testKey = "0123456789abcdef0123456789abcdef"

// memoryUserRepo is an in-memory UserRepository that enforces email uniqueness
type memoryUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	creates int
	err     error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: make(map[uuid.UUID]*user.User)}
}

func (m *memoryUserRepo) Create(_ context.Context, name, email, passwordHash string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return nil, user.ErrDuplicateEmail
		}
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.byID[u.ID] = u
	m.creates++

	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *memoryUserRepo) remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

func newTestPaseto(t *testing.T) *PasetoService {
	t.Helper()
	svc, err := NewPasetoService([]byte(testKey))
	require.NoError(t, err)
	return svc
}

func newTestService(t *testing.T) (*Service, *memoryUserRepo, *PasetoService) {
	t.Helper()
	repo := newMemoryUserRepo()
	tokens := newTestPaseto(t)
	return NewService(repo, tokens, logging.NewLogger(true), time.Hour), repo, tokens
}
