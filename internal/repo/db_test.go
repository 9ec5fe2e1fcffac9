package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/config"
	"github.com/tbourn/go-game-loans/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "does-not-exist", "app.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}

	// Be tolerant across platforms/drivers.
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_SetsPragmasOnEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}

	// Hold several connections at once so the pool has to dial new ones.
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		defer conn.Close()

		var fkOn, busyMS, syncVal int
		var journalMode string
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys;").Scan(&fkOn); err != nil {
			t.Fatalf("PRAGMA foreign_keys: %v", err)
		}
		if fkOn != 1 {
			t.Fatalf("conn %d: expected foreign_keys=1, got %d", i, fkOn)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout;").Scan(&busyMS); err != nil {
			t.Fatalf("PRAGMA busy_timeout: %v", err)
		}
		if busyMS != 5000 {
			t.Fatalf("conn %d: expected busy_timeout=5000, got %d", i, busyMS)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA synchronous;").Scan(&syncVal); err != nil {
			t.Fatalf("PRAGMA synchronous: %v", err)
		}
		// NORMAL == 1
		if syncVal != 1 {
			t.Fatalf("conn %d: expected synchronous=1 (NORMAL), got %d", i, syncVal)
		}
		if err := conn.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&journalMode); err != nil {
			t.Fatalf("PRAGMA journal_mode: %v", err)
		}
		if strings.ToLower(journalMode) != "wal" {
			t.Fatalf("conn %d: expected journal_mode=wal, got %q", i, journalMode)
		}
	}

	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 10 {
		t.Fatalf("expected MaxOpenConnections=10, got %d", stats.MaxOpenConnections)
	}
}

func TestOpen_SQLiteAppliesPoolSettings(t *testing.T) {
	db, err := Open(config.DBConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "app.db"),
		MaxOpenConns: 3,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	sqlDB, _ := db.DB()
	if got := sqlDB.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("expected MaxOpenConnections=3, got %d", got)
	}
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPing_FailsAfterClose(t *testing.T) {
	db := newTestDB(t)
	if err := Close(db); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Ping(context.Background(), db); err == nil {
		t.Fatal("expected ping error on closed pool")
	}
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := newTestDB(t)
	m := db.Migrator()
	for _, tbl := range []any{&domain.Amigo{}, &domain.Jogo{}, &domain.Emprestimo{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
}

func TestSqliteDSN(t *testing.T) {
	got := sqliteDSN("app.db")
	if !strings.HasPrefix(got, "app.db?_pragma=foreign_keys(1)&") {
		t.Fatalf("unexpected dsn %q", got)
	}
	got = sqliteDSN("file:x?mode=memory")
	if !strings.HasPrefix(got, "file:x?mode=memory&_pragma=foreign_keys(1)") {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestEnableTracing(t *testing.T) {
	db := newTestDB(t)
	if err := EnableTracing(db); err != nil {
		t.Fatalf("EnableTracing: %v", err)
	}
	if _, err := CreateFriend(context.Background(), db, "Ana", "ana@x.com"); err != nil {
		t.Fatalf("create with tracing: %v", err)
	}
}

// Compile-time guard to ensure signature stability.
var _ func(string) (*gorm.DB, error) = OpenSQLite
