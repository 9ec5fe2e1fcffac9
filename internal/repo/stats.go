// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// FriendsStats returns the number of friends and the greatest UpdatedAt.
func FriendsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableStats(ctx, db, &domain.Amigo{})
}

// GamesStats returns the number of games and the greatest UpdatedAt.
func GamesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableStats(ctx, db, &domain.Jogo{})
}

// LoansStats returns the number of loans and the greatest UpdatedAt.
func LoansStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableStats(ctx, db, &domain.Emprestimo{})
}

// tableStats executes two lightweight queries against model's table. When
// the table is empty, count is 0 and maxUpdatedAt is nil.
func tableStats(ctx context.Context, db *gorm.DB, model any) (count int64, maxUpdatedAt *time.Time, err error) {
	if err = db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = db.WithContext(ctx).Model(model).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
