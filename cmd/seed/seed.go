package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

type demoAccount struct {
	Email         string
	Password      string
	FirstName     string
	BookmarkTitle string
	BookmarkLink  string
}

var demo = demoAccount{
	Email:         "demo@bookmarks.local",
	Password:      "password123",
	FirstName:     "Demo",
	BookmarkTitle: "First bookmark",
	BookmarkLink:  "https://example.com",
}

type seedResult struct {
	UserID          string
	BookmarkCreated bool
}

// seed upserts the demo user and gives it one bookmark. Running it twice
// resets the password and leaves the bookmark alone.
func seed(ctx context.Context, db *sql.DB, hasher helpers.PasswordHasher, acc demoAccount) (seedResult, error) {
	var res seedResult
	digest, err := hasher.Hash(acc.Password)
	if err != nil {
		return res, fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, first_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id
	`, acc.Email, digest, acc.FirstName).Scan(&res.UserID)
	if err != nil {
		return res, fmt.Errorf("upsert user: %w", err)
	}

	out, err := tx.ExecContext(ctx, `
		INSERT INTO bookmarks (user_id, title, link)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND link = $3)
	`, res.UserID, acc.BookmarkTitle, acc.BookmarkLink)
	if err != nil {
		return res, fmt.Errorf("insert bookmark: %w", err)
	}
	n, err := out.RowsAffected()
	if err != nil {
		return res, fmt.Errorf("insert bookmark: %w", err)
	}
	res.BookmarkCreated = n > 0

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}
