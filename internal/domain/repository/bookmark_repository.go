package repository

import (
	"context"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
)

// BookmarkRepository stores bookmarks. Update and Delete only touch a row
// whose id and owner both match and report ErrNotFound otherwise.
type BookmarkRepository interface {
	Create(ctx context.Context, b *entity.Bookmark) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Bookmark, error)
	GetByID(ctx context.Context, id string) (*entity.Bookmark, error)
	Update(ctx context.Context, b *entity.Bookmark) error
	Delete(ctx context.Context, id, ownerID string) error
}
