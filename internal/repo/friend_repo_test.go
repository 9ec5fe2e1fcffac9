package repo

import (
	"context"
	"errors"
	"testing"
)

func TestListFriends_EmptyTableReturnsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	got, err := ListFriends(context.Background(), db, "")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCreateFriend_AssignsFreshIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := mustFriend(t, db, "Ana")
	b := mustFriend(t, db, "Bruno")
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}

	// A deleted id is never handed out again.
	if _, err := DeleteFriend(ctx, db, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c := mustFriend(t, db, "Carla")
	if c.ID <= b.ID {
		t.Fatalf("expected id > %d after delete, got %d", b.ID, c.ID)
	}

	list, err := ListFriends(ctx, db, "id")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(list) != 2 || list[0].Nome != "Ana" || list[1].Nome != "Carla" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestListFriends_SortByNomeAndInvalidSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	mustFriend(t, db, "Zeca")
	mustFriend(t, db, "Ana")

	got, err := ListFriends(ctx, db, "nome")
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if got[0].Nome != "Ana" || got[1].Nome != "Zeca" {
		t.Fatalf("expected nome order, got %+v", got)
	}

	if _, err := ListFriends(ctx, db, "email; DROP TABLE amigos"); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
	if _, err := ListFriends(ctx, db, "titulo"); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort for titulo, got %v", err)
	}
}

func TestGetFriend_NotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetFriend(context.Background(), db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateFriend_PartialAndMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := mustFriend(t, db, "Ana")

	n, err := UpdateFriend(ctx, db, a.ID, map[string]any{"email": "ana@y.com"})
	if err != nil || n != 1 {
		t.Fatalf("UpdateFriend: n=%d err=%v", n, err)
	}
	got, err := GetFriend(ctx, db, a.ID)
	if err != nil {
		t.Fatalf("GetFriend: %v", err)
	}
	if got.Nome != "Ana" || got.Email != "ana@y.com" {
		t.Fatalf("unexpected row after update: %+v", got)
	}
	if got.UpdatedAt.Before(a.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v < %v", got.UpdatedAt, a.UpdatedAt)
	}

	n, err = UpdateFriend(ctx, db, 999, map[string]any{"nome": "X"})
	if err != nil || n != 0 {
		t.Fatalf("missing row: want (0, nil), got (%d, %v)", n, err)
	}

	n, err = UpdateFriend(ctx, db, a.ID, map[string]any{})
	if err != nil || n != 0 {
		t.Fatalf("empty patch: want (0, nil), got (%d, %v)", n, err)
	}
}

func TestDeleteFriend_RestrictedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := mustFriend(t, db, "Ana")
	j := mustGame(t, db, "Zelda", a.ID)

	_, err := DeleteFriend(ctx, db, a.ID)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected FK violation, got %v", err)
	}
	if _, err := GetFriend(ctx, db, a.ID); err != nil {
		t.Fatalf("friend should still exist: %v", err)
	}

	if _, err := DeleteGame(ctx, db, j.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	n, err := DeleteFriend(ctx, db, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("DeleteFriend: n=%d err=%v", n, err)
	}

	n, err = DeleteFriend(ctx, db, a.ID)
	if err != nil || n != 0 {
		t.Fatalf("second delete: want (0, nil), got (%d, %v)", n, err)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("FOREIGN KEY constraint failed"), true},
		{errors.New(`ERROR: update or delete on table "amigos" violates foreign key constraint "fk_jogos_dono"`), true},
		{errors.New("UNIQUE constraint failed"), false},
	}
	for _, c := range cases {
		if got := IsForeignKeyViolation(c.err); got != c.want {
			t.Errorf("IsForeignKeyViolation(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
