package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportiq/helpdesk/internal/config"
	"github.com/supportiq/helpdesk/internal/domain"
	apperrors "github.com/supportiq/helpdesk/pkg/errorutil"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthService(users *fakeUserRepo) *AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	return NewAuthService(cfg, users)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	user, token, _, err := service.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, token)

	logged, _, _, err := service.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAuthService_RegisterDuplicateEmailConflicts(t *testing.T) {
	service := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, _, _, err := service.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, _, err = service.Register(ctx, "Other Alice", "alice@example.com", "different")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	service := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, _, _, err := service.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, _, err = service.Login(ctx, "alice@example.com", "wrong")
	assert.Error(t, err)
}

func TestAuthService_EnsureAgentIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users)
	ctx := context.Background()

	require.NoError(t, service.EnsureAgent(ctx, "Support Agent", "agent@example.com", "s3cret"))
	require.NoError(t, service.EnsureAgent(ctx, "Support Agent", "agent@example.com", "s3cret"))

	agent, err := users.GetByEmail(ctx, "agent@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, agent.Role)
	assert.Len(t, users.users, 1)
}
