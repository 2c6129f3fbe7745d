package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	repo "github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
)

type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user entity.PublicUser, err error) {
	ctx, span := startSpan(ctx, "UserService.GetProfile")
	defer func() { endSpan(span, err) }()

	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.PublicUser{}, ErrUserNotFound
	}
	if err != nil {
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}

// EditUser applies the non-nil fields of patch to the user's profile.
func (s *UserService) EditUser(ctx context.Context, userID string, patch entity.UserPatch) (user entity.PublicUser, err error) {
	ctx, span := startSpan(ctx, "UserService.EditUser")
	defer func() { endSpan(span, err) }()

	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return entity.PublicUser{}, ErrUserNotFound
	}
	if err != nil {
		return entity.PublicUser{}, err
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	patch.Apply(u)

	if err := s.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return entity.PublicUser{}, ErrEmailTaken
		case errors.Is(err, repo.ErrNotFound):
			return entity.PublicUser{}, ErrUserNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("update user failed")
		}
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}
