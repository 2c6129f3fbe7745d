package handlers

import (
	"time"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
)

// Request bodies. Unknown JSON fields are ignored.

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type EditUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName" binding:"omitempty,nonblank"`
	LastName  *string `json:"lastName" binding:"omitempty,nonblank"`
}

type CreateBookmarkRequest struct {
	Title       string  `json:"title" binding:"required,nonblank"`
	Link        string  `json:"link" binding:"required,link"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type EditBookmarkRequest struct {
	Title       *string `json:"title" binding:"omitempty,nonblank"`
	Link        *string `json:"link" binding:"omitempty,link"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// Response bodies.

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u entity.PublicUser) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type bookmarkResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBookmarkResponse(b *entity.Bookmark) *bookmarkResponse {
	if b == nil {
		return nil
	}
	return &bookmarkResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookmarkList(list []entity.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, 0, len(list))
	for i := range list {
		out = append(out, *toBookmarkResponse(&list[i]))
	}
	return out
}
