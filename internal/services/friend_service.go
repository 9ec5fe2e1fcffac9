// Package services – FriendService
//
// This file implements the FriendService, which manages the lifecycle of
// friends. Names and emails are normalized before they are stored; deletes
// are refused while games or loans still reference the friend.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/repo"
)

// FriendRepo defines the repository contract required by FriendService.
type FriendRepo interface {
	CreateFriend(ctx context.Context, db *gorm.DB, nome, email string) (*domain.Amigo, error)
	ListFriends(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Amigo, error)
	GetFriend(ctx context.Context, db *gorm.DB, id uint) (*domain.Amigo, error)
	UpdateFriend(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error)
	DeleteFriend(ctx context.Context, db *gorm.DB, id uint) (int64, error)
	FriendsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// FriendInput carries the fields of a new friend.
type FriendInput struct {
	Nome  string
	Email string
}

// FriendPatch carries a partial update; nil fields are left untouched.
type FriendPatch struct {
	Nome  *string
	Email *string
}

// FriendService provides CRUD over friends.
type FriendService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the friend repository used by this service.
	Repo FriendRepo
}

// NewFriendService constructs a FriendService.
func NewFriendService(db *gorm.DB, r FriendRepo) *FriendService {
	return &FriendService{DB: db, Repo: r}
}

// List returns all friends ordered by sort (id by default).
func (s *FriendService) List(ctx context.Context, sort domain.SortField) (out []domain.Amigo, err error) {
	ctx, end := begin(ctx, "Friend", "List", attribute.String("sort", string(sort)))
	defer func() { end(err) }()

	return s.Repo.ListFriends(ctx, s.DB, sort)
}

// Options returns friends for selection lists, in collated name order.
func (s *FriendService) Options(ctx context.Context) (out []domain.Amigo, err error) {
	ctx, end := begin(ctx, "Friend", "Options")
	defer func() { end(err) }()

	out, err = s.Repo.ListFriends(ctx, s.DB, domain.SortByNome)
	if err != nil {
		return nil, err
	}
	sortCollated(out, func(a domain.Amigo) string { return a.Nome })
	return out, nil
}

// Get returns friend id or ErrFriendNotFound.
func (s *FriendService) Get(ctx context.Context, id uint) (a *domain.Amigo, err error) {
	ctx, end := begin(ctx, "Friend", "Get", attribute.Int64("friend.id", int64(id)))
	defer func() { end(err) }()

	a, err = s.Repo.GetFriend(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrFriendNotFound
	}
	return a, err
}

// Create validates in and inserts a new friend.
func (s *FriendService) Create(ctx context.Context, in FriendInput) (a *domain.Amigo, err error) {
	ctx, end := begin(ctx, "Friend", "Create")
	defer func() { end(err) }()

	nome, err := required("nome", in.Nome)
	if err != nil {
		return nil, err
	}
	email, err := required("email", in.Email)
	if err != nil {
		return nil, err
	}
	return s.Repo.CreateFriend(ctx, s.DB, nome, normalizeEmail(email))
}

// Update applies p to friend id. A missing id is not an error.
func (s *FriendService) Update(ctx context.Context, id uint, p FriendPatch) (err error) {
	ctx, end := begin(ctx, "Friend", "Update", attribute.Int64("friend.id", int64(id)))
	defer func() { end(err) }()

	fields := map[string]any{}
	if p.Nome != nil {
		v, err := required("nome", *p.Nome)
		if err != nil {
			return err
		}
		fields["nome"] = v
	}
	if p.Email != nil {
		v, err := required("email", *p.Email)
		if err != nil {
			return err
		}
		fields["email"] = normalizeEmail(v)
	}
	_, err = s.Repo.UpdateFriend(ctx, s.DB, id, fields)
	return err
}

// Delete removes friend id. It returns ErrFriendInUse while games or loans
// reference the friend, and nil when the id does not exist.
func (s *FriendService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "Friend", "Delete", attribute.Int64("friend.id", int64(id)))
	defer func() { end(err) }()

	_, err = s.Repo.DeleteFriend(ctx, s.DB, id)
	if repo.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrFriendInUse, err)
	}
	return err
}

// Stats returns the friend count and latest update time.
func (s *FriendService) Stats(ctx context.Context) (n int64, maxAt *time.Time, err error) {
	ctx, end := begin(ctx, "Friend", "Stats")
	defer func() { end(err) }()

	return s.Repo.FriendsStats(ctx, s.DB)
}
