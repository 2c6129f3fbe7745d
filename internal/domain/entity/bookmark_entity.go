package entity

import "time"

// Bookmark is a saved link owned by exactly one user.
type Bookmark struct {
	ID          string
	UserID      string
	Title       string
	Link        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Bookmark) OwnedBy(userID string) bool {
	return b != nil && b.UserID == userID
}

type BookmarkInput struct {
	Title       string
	Link        string
	Description *string
}

// BookmarkPatch carries optional bookmark changes. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	Link        *string
	Description *string
}

func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Link != nil {
		b.Link = *p.Link
	}
	if p.Description != nil {
		b.Description = p.Description
	}
}
