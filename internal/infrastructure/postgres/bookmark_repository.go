package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
)

const bookmarkColumns = `id, user_id, title, link, description, created_at, updated_at`

type BookmarkRepository struct {
	db DBTX
}

func NewBookmarkRepository(db DBTX) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Create(ctx context.Context, b *entity.Bookmark) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO bookmarks (user_id, title, link, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.Title, b.Link, ptrText(b.Description))

	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("insert bookmark: %w", mapError(err))
	}
	return nil
}

func (r *BookmarkRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", mapError(err))
	}
	defer rows.Close()

	out := make([]entity.Bookmark, 0)
	for rows.Next() {
		var (
			b    entity.Bookmark
			desc pgtype.Text
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Link, &desc, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.Description = textPtr(desc)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", mapError(err))
	}
	return out, nil
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id string) (*entity.Bookmark, error) {
	var (
		b    entity.Bookmark
		desc pgtype.Text
	)
	err := r.db.QueryRow(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1`, id).Scan(
		&b.ID, &b.UserID, &b.Title, &b.Link, &desc, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("select bookmark: %w", mapError(err))
	}
	b.Description = textPtr(desc)
	return &b, nil
}

// Update writes title, link and description of the row matching both
// b.ID and b.UserID.
func (r *BookmarkRepository) Update(ctx context.Context, b *entity.Bookmark) error {
	row := r.db.QueryRow(ctx, `
		UPDATE bookmarks
		SET title = $1, link = $2, description = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at
	`, b.Title, b.Link, ptrText(b.Description), b.ID, b.UserID)

	if err := row.Scan(&b.UpdatedAt); err != nil {
		return fmt.Errorf("update bookmark: %w", mapError(err))
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", mapError(err))
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("delete bookmark: %w", repository.ErrNotFound)
	}
	return nil
}

var _ repository.BookmarkRepository = (*BookmarkRepository)(nil)
