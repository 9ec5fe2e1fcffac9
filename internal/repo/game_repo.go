package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// CreateGame inserts a new Jogo owned by amigoID. A missing owner is
// rejected by the foreign key.
func CreateGame(ctx context.Context, db *gorm.DB, titulo, plataforma string, amigoID uint) (*domain.Jogo, error) {
	now := time.Now().UTC()
	j := &domain.Jogo{
		Titulo:     titulo,
		Plataforma: plataforma,
		AmigoID:    amigoID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// Omit associations so a nil Dono is never upserted.
	if err := db.WithContext(ctx).Omit("Dono").Create(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

// ListGames returns every game with its owner preloaded, ordered by sort
// (id or titulo).
func ListGames(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Jogo, error) {
	order, err := orderBy(sort, domain.SortByID, domain.SortByTitulo)
	if err != nil {
		return nil, err
	}
	out := []domain.Jogo{}
	err = db.WithContext(ctx).Preload("Dono").Order(order).Find(&out).Error
	return out, err
}

// GetGame fetches a single game with its owner, or ErrNotFound.
func GetGame(ctx context.Context, db *gorm.DB, id uint) (*domain.Jogo, error) {
	var j domain.Jogo
	if err := db.WithContext(ctx).Preload("Dono").Where("id = ?", id).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateGame writes the given columns (titulo, plataforma, amigo_id).
func UpdateGame(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return updateColumns(ctx, db, &domain.Jogo{}, id, fields)
}

// DeleteGame removes game id unless a loan still references it.
func DeleteGame(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Jogo{}, id)
	return res.RowsAffected, res.Error
}
