package repo

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// newTestDB opens a migrated, file-backed database unique to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func mustFriend(t *testing.T, db *gorm.DB, nome string) *domain.Amigo {
	t.Helper()
	a, err := CreateFriend(context.Background(), db, nome, nome+"@x.com")
	if err != nil {
		t.Fatalf("create friend: %v", err)
	}
	return a
}

func mustGame(t *testing.T, db *gorm.DB, titulo string, owner uint) *domain.Jogo {
	t.Helper()
	j, err := CreateGame(context.Background(), db, titulo, "PS5", owner)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return j
}
