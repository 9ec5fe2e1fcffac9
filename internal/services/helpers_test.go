package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/repo"
)

// sqlRepo forwards to the repo package so services can be exercised
// against a real database.
type sqlRepo struct{}

func (sqlRepo) CreateFriend(ctx context.Context, db *gorm.DB, nome, email string) (*domain.Amigo, error) {
	return repo.CreateFriend(ctx, db, nome, email)
}
func (sqlRepo) ListFriends(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Amigo, error) {
	return repo.ListFriends(ctx, db, sort)
}
func (sqlRepo) GetFriend(ctx context.Context, db *gorm.DB, id uint) (*domain.Amigo, error) {
	return repo.GetFriend(ctx, db, id)
}
func (sqlRepo) UpdateFriend(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateFriend(ctx, db, id, fields)
}
func (sqlRepo) DeleteFriend(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteFriend(ctx, db, id)
}
func (sqlRepo) FriendsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.FriendsStats(ctx, db)
}

func (sqlRepo) CreateGame(ctx context.Context, db *gorm.DB, titulo, plataforma string, amigoID uint) (*domain.Jogo, error) {
	return repo.CreateGame(ctx, db, titulo, plataforma, amigoID)
}
func (sqlRepo) ListGames(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Jogo, error) {
	return repo.ListGames(ctx, db, sort)
}
func (sqlRepo) GetGame(ctx context.Context, db *gorm.DB, id uint) (*domain.Jogo, error) {
	return repo.GetGame(ctx, db, id)
}
func (sqlRepo) UpdateGame(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateGame(ctx, db, id, fields)
}
func (sqlRepo) DeleteGame(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteGame(ctx, db, id)
}
func (sqlRepo) GamesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.GamesStats(ctx, db)
}

func (sqlRepo) CreateLoan(ctx context.Context, db *gorm.DB, jogoID, amigoID uint, dataInicio string, dataFim *string) (*domain.Emprestimo, error) {
	return repo.CreateLoan(ctx, db, jogoID, amigoID, dataInicio, dataFim)
}
func (sqlRepo) ListLoans(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Emprestimo, error) {
	return repo.ListLoans(ctx, db, sort)
}
func (sqlRepo) GetLoan(ctx context.Context, db *gorm.DB, id uint) (*domain.Emprestimo, error) {
	return repo.GetLoan(ctx, db, id)
}
func (sqlRepo) UpdateLoan(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateLoan(ctx, db, id, fields)
}
func (sqlRepo) CloseLoan(ctx context.Context, db *gorm.DB, id uint, dataFim string) (int64, error) {
	return repo.CloseLoan(ctx, db, id, dataFim)
}
func (sqlRepo) DeleteLoan(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteLoan(ctx, db, id)
}
func (sqlRepo) LoansStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.LoansStats(ctx, db)
}

type testServices struct {
	friends *FriendService
	games   *GameService
	loans   *LoanService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(db) })
	return testServices{
		friends: NewFriendService(db, sqlRepo{}),
		games:   NewGameService(db, sqlRepo{}),
		loans:   NewLoanService(db, sqlRepo{}),
	}
}

func strp(s string) *string { return &s }
func uintp(u uint) *uint    { return &u }
