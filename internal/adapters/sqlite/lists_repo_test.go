package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
)

func testAnimeList(id string, createdAt time.Time) domain.AnimeList {
	return domain.AnimeList{
		ID:     id,
		Name:   "export " + id,
		RawXML: []byte("<myanimelist><anime><series_animedb_id>1</series_animedb_id></anime></myanimelist>"),
		Entries: []domain.ListEntry{
			{ID: "1", Title: "Cowboy Bebop", Status: "Plan to Watch"},
			{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood", Status: "Plan to Watch"},
		},
		CreatedAt: createdAt,
	}
}

func TestListsRepository_SaveGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewListsRepository(db.SQL)
	want := testAnimeList("l1", time.Now().UTC().Truncate(time.Second))

	saved, err := repo.Save(ctx, want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID != want.ID || saved.Name != want.Name {
		t.Fatalf("saved: %+v", saved)
	}
	if len(saved.Entries) != 2 || saved.Entries[1].ID != "5114" {
		t.Fatalf("entries: %+v", saved.Entries)
	}
	if string(saved.RawXML) != string(want.RawXML) {
		t.Fatalf("raw xml mismatch")
	}

	got, err := repo.Get(ctx, "l1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Entries[0].Title != "Cowboy Bebop" {
		t.Fatalf("Get entries: %+v", got.Entries)
	}
}

func TestListsRepository_LatestAndList(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewListsRepository(db.SQL)

	if _, err := repo.Latest(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Latest(empty): want ErrNotFound, got %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		if _, err := repo.Save(ctx, testAnimeList(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != "c" {
		t.Fatalf("Latest: want c, got %s", latest.ID)
	}

	all, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" {
		t.Fatalf("List: %+v", all)
	}
}

func TestListsRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewListsRepository(db.SQL)
	if _, err := repo.Save(ctx, testAnimeList("x", time.Now().UTC())); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := repo.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "x"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "x"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Delete twice: want ErrNotFound, got %v", err)
	}
}
