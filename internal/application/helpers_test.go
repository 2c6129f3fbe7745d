package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	repo "github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
	"github.com/oksasatya/go-bookmarks-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

func fastHasher() helpers.PasswordHasher {
	return &helpers.Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

func newJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func newAuth(users repo.UserRepository) *AuthService {
	return NewAuthService(users, newJWT(), fastHasher(), helpers.NewDiscardLogger())
}

func signUp(t *testing.T, s *AuthService, email string) entity.PublicUser {
	t.Helper()
	ctx := context.Background()
	pair, err := s.SignUp(ctx, email, "123456789")
	require.NoError(t, err)
	u, err := s.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

// failingUsers wraps a real repository and overrides selected calls.
type failingUsers struct {
	repo.UserRepository
	createErr  error
	getByIDErr error
	updateErr  error
}

func (f *failingUsers) Create(ctx context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.UserRepository.Create(ctx, u)
}

func (f *failingUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.UserRepository.GetByID(ctx, id)
}

func (f *failingUsers) Update(ctx context.Context, u *entity.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.UserRepository.Update(ctx, u)
}

func newMemory() *memory.Store { return memory.NewStore() }
