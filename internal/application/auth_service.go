package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	repo "github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher helpers.PasswordHasher
	Logger *logrus.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, hasher helpers.PasswordHasher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Hasher: hasher, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp stores a new user and returns its first token pair.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (pair helpers.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.SignUp")
	defer func() { endSpan(span, err) }()

	digest, err := s.Hasher.Hash(password)
	if err != nil {
		return helpers.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Email: normalizeEmail(email), PasswordHash: digest}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return helpers.TokenPair{}, ErrCredentialsTaken
		}
		return helpers.TokenPair{}, err
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	return s.issue(ctx, u)
}

// SignIn checks the credentials and returns a fresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (pair helpers.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.SignIn")
	defer func() { endSpan(span, err) }()

	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		s.burnVerify(password)
		return helpers.TokenPair{}, ErrCredentialsIncorrect
	}
	if err != nil {
		return helpers.TokenPair{}, err
	}

	ok, err := s.Hasher.Verify(u.PasswordHash, password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored password hash is unreadable")
		}
		return helpers.TokenPair{}, ErrCredentialsIncorrect
	}
	if !ok {
		return helpers.TokenPair{}, ErrCredentialsIncorrect
	}
	return s.issue(ctx, u)
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (pair helpers.TokenPair, err error) {
	ctx, span := startSpan(ctx, "AuthService.Refresh")
	defer func() { endSpan(span, err) }()

	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return helpers.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	u, err := s.Users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repo.ErrNotFound) {
		return helpers.TokenPair{}, ErrUnauthenticated
	}
	if err != nil {
		return helpers.TokenPair{}, err
	}
	return s.issue(ctx, u)
}

// Authenticate resolves an access token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (user entity.PublicUser, err error) {
	ctx, span := startSpan(ctx, "AuthService.Authenticate", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() { endSpan(span, err) }()

	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return entity.PublicUser{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	u, err := s.Users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.PublicUser{}, ErrUnauthenticated
	}
	if err != nil {
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (helpers.TokenPair, error) {
	pair, err := s.JWT.Issue(ctx, u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue tokens failed")
		}
		return helpers.TokenPair{}, err
	}
	return pair, nil
}

// burnVerify spends one verification on a throwaway digest so an unknown
// email costs about as much as a wrong password.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		d, err := s.Hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyDigest = d
		}
	})
	if s.dummyDigest != "" {
		_, _ = s.Hasher.Verify(s.dummyDigest, password)
	}
}
