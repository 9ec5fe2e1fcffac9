package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-game-loans/internal/domain"
)

func TestFriendsStats_ZeroRows(t *testing.T) {
	db := newTestDB(t)
	count, maxAt, err := FriendsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("FriendsStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestFriendsStats_CountAndMax(t *testing.T) {
	db := newTestDB(t)

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max
	for _, a := range []*domain.Amigo{
		{Nome: "a", Email: "a@x.com", CreatedAt: t1, UpdatedAt: t1},
		{Nome: "b", Email: "b@x.com", CreatedAt: t2, UpdatedAt: t2},
	} {
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count, maxAt, err := FriendsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("FriendsStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", t2, maxAt)
	}
}

func TestGamesAndLoansStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := mustFriend(t, db, "Ana")
	j := mustGame(t, db, "Zelda", a.ID)
	if _, err := CreateLoan(ctx, db, j.ID, a.ID, "2024-01-01", nil); err != nil {
		t.Fatalf("CreateLoan: %v", err)
	}

	if n, maxAt, err := GamesStats(ctx, db); err != nil || n != 1 || maxAt == nil {
		t.Fatalf("GamesStats: n=%d maxAt=%v err=%v", n, maxAt, err)
	}
	if n, maxAt, err := LoansStats(ctx, db); err != nil || n != 1 || maxAt == nil {
		t.Fatalf("LoansStats: n=%d maxAt=%v err=%v", n, maxAt, err)
	}
}

// Force the second query (SELECT updated_at ...) to fail by renaming the column.
func TestFriendsStats_SelectLatest_ErrorPath(t *testing.T) {
	db := newTestDB(t)
	mustFriend(t, db, "Ana")

	if err := db.Exec(`ALTER TABLE amigos RENAME COLUMN updated_at TO updated_at_old`).Error; err != nil {
		t.Fatalf("rename column: %v", err)
	}

	if _, _, err := FriendsStats(context.Background(), db); err == nil {
		t.Fatalf("expected error from latest-updated select after column rename")
	}
}

func TestFriendsStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrator().DropTable(&domain.Emprestimo{}, &domain.Jogo{}, &domain.Amigo{}); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, _, err := FriendsStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing amigos table")
	}
}
