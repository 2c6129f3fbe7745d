package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash holds an encoded argon2id or bcrypt digest and never leaves
// the application layer; use Public for anything outward facing.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is a User without credentials.
type PublicUser struct {
	ID        string
	Email     string
	FirstName *string
	LastName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch carries optional profile changes. Nil fields are left untouched.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Apply copies the non-nil fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
}
