// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Amigo
// (friend) model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only CRUD persistence
// and query composition.
//
// Error semantics:
//   - When a friend is not found, GetFriend returns gorm.ErrRecordNotFound
//     (exported here as ErrNotFound).
//   - Update and delete report the number of affected rows; zero is not an
//     error.
//   - On DB errors (constraint violations, connectivity issues, etc.), the
//     raw gorm error is propagated. Use IsForeignKeyViolation to classify
//     RESTRICT rejections.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// CreateFriend inserts a new Amigo row. The ID is assigned by the database.
func CreateFriend(ctx context.Context, db *gorm.DB, nome, email string) (*domain.Amigo, error) {
	now := time.Now().UTC()
	a := &domain.Amigo{
		Nome:      nome,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListFriends returns every friend ordered by sort (id or nome). It returns
// an empty, non-nil slice when the table is empty.
func ListFriends(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Amigo, error) {
	order, err := orderBy(sort, domain.SortByID, domain.SortByNome)
	if err != nil {
		return nil, err
	}
	out := []domain.Amigo{}
	err = db.WithContext(ctx).Order(order).Find(&out).Error
	return out, err
}

// GetFriend fetches a single friend by ID, or ErrNotFound.
func GetFriend(ctx context.Context, db *gorm.DB, id uint) (*domain.Amigo, error) {
	var a domain.Amigo
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateFriend writes the given columns (nome, email) of friend id and
// bumps updated_at.
func UpdateFriend(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return updateColumns(ctx, db, &domain.Amigo{}, id, fields)
}

// DeleteFriend removes friend id. Rows still referencing it make the
// database reject the delete.
func DeleteFriend(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Amigo{}, id)
	return res.RowsAffected, res.Error
}

// updateColumns is shared by the Update* functions.
func updateColumns(ctx context.Context, db *gorm.DB, model any, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}
