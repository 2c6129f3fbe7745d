package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	repo "github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
)

// BookmarkCache is an optional read-through cache of each owner's list.
// SetList must drop the list when Invalidate ran after gen was read.
type BookmarkCache interface {
	GetList(ctx context.Context, ownerID string) ([]entity.Bookmark, bool, error)
	Generation(ctx context.Context, ownerID string) (int64, error)
	SetList(ctx context.Context, ownerID string, gen int64, list []entity.Bookmark) (bool, error)
	Invalidate(ctx context.Context, ownerID string) error
}

type BookmarkService struct {
	Bookmarks repo.BookmarkRepository
	Cache     BookmarkCache // nil disables caching
	Logger    *logrus.Logger

	fill singleflight.Group
}

func NewBookmarkService(bookmarks repo.BookmarkRepository, cache BookmarkCache, logger *logrus.Logger) *BookmarkService {
	return &BookmarkService{Bookmarks: bookmarks, Cache: cache, Logger: logger}
}

func (s *BookmarkService) Create(ctx context.Context, ownerID string, in entity.BookmarkInput) (b *entity.Bookmark, err error) {
	ctx, span := startSpan(ctx, "BookmarkService.Create")
	defer func() { endSpan(span, err) }()

	b = &entity.Bookmark{
		UserID:      ownerID,
		Title:       in.Title,
		Link:        in.Link,
		Description: in.Description,
	}
	if err := s.Bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("bookmark.id", b.ID))
	s.invalidate(ctx, ownerID)
	return b, nil
}

// List returns the owner's bookmarks oldest first; never nil. Concurrent
// cache misses for one owner and generation share a single store read.
func (s *BookmarkService) List(ctx context.Context, ownerID string) (list []entity.Bookmark, err error) {
	ctx, span := startSpan(ctx, "BookmarkService.List")
	defer func() { endSpan(span, err) }()

	if s.Cache == nil {
		return s.load(ctx, ownerID)
	}

	cached, ok, cErr := s.Cache.GetList(ctx, ownerID)
	switch {
	case cErr != nil:
		s.warn(cErr, ownerID, "bookmark cache read failed")
		return s.load(ctx, ownerID)
	case ok:
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	// read before the store so a write racing the fill bumps it
	gen, cErr := s.Cache.Generation(ctx, ownerID)
	if cErr != nil {
		s.warn(cErr, ownerID, "bookmark cache generation read failed")
		return s.load(ctx, ownerID)
	}

	key := ownerID + ":" + strconv.FormatInt(gen, 10)
	v, err, shared := s.fill.Do(key, func() (any, error) {
		fillCtx := context.WithoutCancel(ctx)
		list, err := s.load(fillCtx, ownerID)
		if err != nil {
			return nil, err
		}
		if _, cErr := s.Cache.SetList(fillCtx, ownerID, gen, list); cErr != nil {
			s.warn(cErr, ownerID, "bookmark cache write failed")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("cache.fill_shared", shared))
	return v.([]entity.Bookmark), nil
}

func (s *BookmarkService) load(ctx context.Context, ownerID string) ([]entity.Bookmark, error) {
	list, err := s.Bookmarks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Bookmark{}
	}
	return list, nil
}

// GetByID returns nil without error when the bookmark is missing or owned
// by someone else.
func (s *BookmarkService) GetByID(ctx context.Context, ownerID, id string) (b *entity.Bookmark, err error) {
	ctx, span := startSpan(ctx, "BookmarkService.GetByID")
	defer func() { endSpan(span, err) }()

	return s.owned(ctx, ownerID, id)
}

func (s *BookmarkService) EditByID(ctx context.Context, ownerID, id string, patch entity.BookmarkPatch) (b *entity.Bookmark, err error) {
	ctx, span := startSpan(ctx, "BookmarkService.EditByID")
	defer func() { endSpan(span, err) }()

	b, err = s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrAccessDenied
	}
	patch.Apply(b)
	if err := s.Bookmarks.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// deleted between the read and the write
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return b, nil
}

func (s *BookmarkService) DeleteByID(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := startSpan(ctx, "BookmarkService.DeleteByID")
	defer func() { endSpan(span, err) }()

	b, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrAccessDenied
	}
	if err := s.Bookmarks.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *BookmarkService) owned(ctx context.Context, ownerID, id string) (*entity.Bookmark, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	b, err := s.Bookmarks.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bookmark: %w", err)
	}
	if !b.OwnedBy(ownerID) {
		return nil, nil
	}
	return b, nil
}

func (s *BookmarkService) invalidate(ctx context.Context, ownerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, ownerID); err != nil {
		s.warn(err, ownerID, "bookmark cache invalidate failed")
	}
}

func (s *BookmarkService) warn(err error, ownerID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", ownerID).Warn(msg)
	}
}
