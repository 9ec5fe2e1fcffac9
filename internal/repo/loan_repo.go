package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// CreateLoan inserts a new Emprestimo. dataFim may be nil for a loan that
// is still in progress.
func CreateLoan(ctx context.Context, db *gorm.DB, jogoID, amigoID uint, dataInicio string, dataFim *string) (*domain.Emprestimo, error) {
	now := time.Now().UTC()
	e := &domain.Emprestimo{
		JogoID:     jogoID,
		AmigoID:    amigoID,
		DataInicio: dataInicio,
		DataFim:    dataFim,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.WithContext(ctx).Omit("Jogo", "Amigo").Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListLoans returns every loan with the lent game and the borrower
// preloaded, ordered by id.
func ListLoans(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Emprestimo, error) {
	order, err := orderBy(sort, domain.SortByID)
	if err != nil {
		return nil, err
	}
	out := []domain.Emprestimo{}
	err = db.WithContext(ctx).
		Preload("Jogo").
		Preload("Amigo").
		Order(order).
		Find(&out).Error
	return out, err
}

// GetLoan fetches a single loan with its associations, or ErrNotFound.
func GetLoan(ctx context.Context, db *gorm.DB, id uint) (*domain.Emprestimo, error) {
	var e domain.Emprestimo
	err := db.WithContext(ctx).
		Preload("Jogo").
		Preload("Amigo").
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateLoan writes the given columns (jogo_id, amigo_id, data_inicio,
// data_fim). A nil data_fim value clears the end date.
func UpdateLoan(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return updateColumns(ctx, db, &domain.Emprestimo{}, id, fields)
}

// CloseLoan sets data_fim on loan id only while it is still open.
func CloseLoan(ctx context.Context, db *gorm.DB, id uint, dataFim string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Emprestimo{}).
		Where("id = ? AND (data_fim IS NULL OR data_fim = '')", id).
		Updates(map[string]any{
			"data_fim":   dataFim,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// DeleteLoan removes loan id.
func DeleteLoan(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Emprestimo{}, id)
	return res.RowsAffected, res.Error
}
