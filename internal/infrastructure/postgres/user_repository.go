package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, ptrText(u.FirstName), ptrText(u.LastName))

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("insert user: %w", mapError(err))
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var (
		u                   entity.User
		firstName, lastName pgtype.Text
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &firstName, &lastName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("select user: %w", mapError(err))
	}
	u.FirstName = textPtr(firstName)
	u.LastName = textPtr(lastName)
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, first_name = $3, last_name = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, u.Email, u.PasswordHash, ptrText(u.FirstName), ptrText(u.LastName), u.ID)

	if err := row.Scan(&u.UpdatedAt); err != nil {
		return fmt.Errorf("update user: %w", mapError(err))
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
