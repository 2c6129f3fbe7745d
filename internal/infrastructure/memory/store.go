// Package memory provides mutex guarded, process-local implementations of
// the repository contracts. It backs STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-bookmarks-api/internal/domain/entity"
	"github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
)

// Store holds users and bookmarks behind a single lock so that the
// owner-guarded writes behave like a single-row UPDATE/DELETE.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	emails    map[string]string
	bookmarks map[string]entity.Bookmark
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		emails:    make(map[string]string),
		bookmarks: make(map[string]entity.Bookmark),
		now:       time.Now,
	}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) Bookmarks() *BookmarkRepository { return &BookmarkRepository{s: s} }

// Ping satisfies the health check contract.
func (s *Store) Ping(context.Context) error { return nil }

func emailKey(email string) string { return strings.ToLower(email) }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[emailKey(u.Email)]; taken {
		return repository.ErrDuplicate
	}
	now := s.now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	s.emails[emailKey(u.Email)] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if owner, taken := s.emails[emailKey(u.Email)]; taken && owner != u.ID {
		return repository.ErrDuplicate
	}
	delete(s.emails, emailKey(cur.Email))
	s.emails[emailKey(u.Email)] = u.ID
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = s.now()
	s.users[u.ID] = *u
	return nil
}

type BookmarkRepository struct{ s *Store }

func (r *BookmarkRepository) Create(_ context.Context, b *entity.Bookmark) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b.UserID]; !ok {
		return repository.ErrNotFound
	}
	now := s.now()
	b.ID = uuid.NewString()
	b.CreatedAt, b.UpdatedAt = now, now
	s.bookmarks[b.ID] = *b
	return nil
}

func (r *BookmarkRepository) ListByOwner(_ context.Context, ownerID string) ([]entity.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Bookmark, 0)
	for _, b := range r.s.bookmarks {
		if b.UserID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BookmarkRepository) GetByID(_ context.Context, id string) (*entity.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookmarks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookmarkRepository) Update(_ context.Context, b *entity.Bookmark) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.bookmarks[b.ID]
	if !ok || cur.UserID != b.UserID {
		return repository.ErrNotFound
	}
	cur.Title, cur.Link, cur.Description = b.Title, b.Link, b.Description
	cur.UpdatedAt = s.now()
	s.bookmarks[b.ID] = cur
	*b = cur
	return nil
}

func (r *BookmarkRepository) Delete(_ context.Context, id, ownerID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.bookmarks[id]
	if !ok || cur.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.BookmarkRepository = (*BookmarkRepository)(nil)
)
