package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/movify/movify-server/internal/database"
	"github.com/movify/movify-server/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func statusPtr(s model.Status) *model.Status { return &s }
func boolPtr(b bool) *bool                   { return &b }
func timePtr(t time.Time) *time.Time         { return &t }

func TestUpsertCreatesRow(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	rec, err := repo.Upsert(ctx, 550, model.StatusUpdate{Status: statusPtr(model.StatusWatched)})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if rec.MovieID != 550 || rec.Status != model.StatusWatched {
		t.Fatalf("got %+v", rec)
	}
	if rec.IsFavorite || rec.ScheduledDate != nil {
		t.Fatalf("unsupplied fields should default: %+v", rec)
	}
	if rec.ID == 0 || rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("row metadata missing: %+v", rec)
	}
}

func TestUpsertPreservesUnsuppliedFields(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	sched := time.Date(2030, time.June, 15, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Upsert(ctx, 27205, model.StatusUpdate{
		Status:        statusPtr(model.StatusWantToWatch),
		ScheduledDate: timePtr(sched),
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Flipping the favorite flag must not touch status or scheduled date.
	rec, err := repo.Upsert(ctx, 27205, model.StatusUpdate{IsFavorite: boolPtr(true)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if rec.Status != model.StatusWantToWatch {
		t.Errorf("status lost: %q", rec.Status)
	}
	if !rec.IsFavorite {
		t.Errorf("favorite not set")
	}
	if rec.ScheduledDate == nil || !rec.ScheduledDate.Equal(sched) {
		t.Errorf("scheduled date lost: %v", rec.ScheduledDate)
	}
}

func TestUpsertKeepsIDAndCreatedAt(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Upsert(ctx, 603, model.StatusUpdate{Status: statusPtr(model.StatusWatched)})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, 603, model.StatusUpdate{IsFavorite: boolPtr(true)})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("id changed: %d -> %d", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestUpsertIsIdempotentPerField(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	upd := model.StatusUpdate{Status: statusPtr(model.StatusWatched), IsFavorite: boolPtr(true)}
	if _, err := repo.Upsert(ctx, 157336, upd); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, err := repo.Upsert(ctx, 157336, upd)
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if rec.Status != model.StatusWatched || !rec.IsFavorite {
		t.Fatalf("repeat changed the record: %+v", rec)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single row, got %d", len(all))
	}
}

func TestGetAbsentRow(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	rec, err := repo.Get(context.Background(), 99999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, 550, model.StatusUpdate{Status: statusPtr(model.StatusWatched)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Remove(ctx, 550); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec, _ := repo.Get(ctx, 550); rec != nil {
		t.Fatalf("row survived remove: %+v", rec)
	}
	// Removing again, and removing a movie that never had a row, both succeed.
	if err := repo.Remove(ctx, 550); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if err := repo.Remove(ctx, 424242); err != nil {
		t.Fatalf("remove of absent row: %v", err)
	}
}

func TestListOrderingAndFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatusRepo(db)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, 1, model.StatusUpdate{Status: statusPtr(model.StatusWatched), IsFavorite: boolPtr(true)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, 2, model.StatusUpdate{Status: statusPtr(model.StatusWantToWatch)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, 3, model.StatusUpdate{IsFavorite: boolPtr(true)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Writes within the same second share a timestamp, so install distinct
	// updated_at values to make the expected order unambiguous.
	base := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []int64{1, 2, 3} {
		ts := base.Add(time.Duration(i) * time.Minute).Format(timestampLayout)
		if _, err := db.ExecContext(ctx, `UPDATE movie_status SET updated_at = ? WHERE movie_id = ?`, ts, id); err != nil {
			t.Fatalf("set updated_at: %v", err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	gotIDs := make([]int64, len(all))
	for i, r := range all {
		gotIDs[i] = r.MovieID
	}
	if len(gotIDs) != 3 || gotIDs[0] != 3 || gotIDs[1] != 2 || gotIDs[2] != 1 {
		t.Fatalf("wrong order: %v", gotIDs)
	}

	favs, err := repo.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favs) != 2 || favs[0].MovieID != 3 || favs[1].MovieID != 1 {
		t.Fatalf("wrong favorites: %+v", favs)
	}

	watched, err := repo.ListByStatus(ctx, model.StatusWatched)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(watched) != 1 || watched[0].MovieID != 1 {
		t.Fatalf("wrong watched list: %+v", watched)
	}
}

func TestScheduledDateStoredAsCalendarDate(t *testing.T) {
	repo := NewStatusRepo(newTestDB(t))
	ctx := context.Background()

	// The time of day is dropped on write.
	in := time.Date(2030, time.December, 24, 18, 30, 45, 0, time.UTC)
	rec, err := repo.Upsert(ctx, 11, model.StatusUpdate{
		Status:        statusPtr(model.StatusWantToWatch),
		ScheduledDate: timePtr(in),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	want := time.Date(2030, time.December, 24, 0, 0, 0, 0, time.UTC)
	if rec.ScheduledDate == nil || !rec.ScheduledDate.Equal(want) {
		t.Fatalf("scheduled date = %v, want %v", rec.ScheduledDate, want)
	}
}

func TestNilDBReturnsStoreUnavailable(t *testing.T) {
	repo := NewStatusRepo(nil)
	ctx := context.Background()

	if _, err := repo.Get(ctx, 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Get: %v", err)
	}
	if _, err := repo.Upsert(ctx, 1, model.StatusUpdate{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Upsert: %v", err)
	}
	if _, err := repo.ListAll(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("ListAll: %v", err)
	}
	if err := repo.Remove(ctx, 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Remove: %v", err)
	}
}

func TestTokenRepoLifecycle(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	exp := time.Now().UTC().Add(time.Hour)
	if err := repo.StoreRefresh(ctx, "hash-a", exp); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := repo.ValidateRefresh(ctx, "hash-a"); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := repo.ValidateRefresh(ctx, "hash-unknown"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("unknown hash: %v", err)
	}
	if err := repo.RevokeByHash(ctx, "hash-a"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := repo.ValidateRefresh(ctx, "hash-a"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("revoked hash still valid: %v", err)
	}
}

func TestTokenRepoRevokeAll(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	exp := time.Now().UTC().Add(time.Hour)
	if err := repo.StoreRefresh(ctx, "hash-a", exp); err != nil {
		t.Fatalf("store a: %v", err)
	}
	if err := repo.StoreRefresh(ctx, "hash-b", exp); err != nil {
		t.Fatalf("store b: %v", err)
	}
	if err := repo.RevokeAll(ctx); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	for _, h := range []string{"hash-a", "hash-b"} {
		if err := repo.ValidateRefresh(ctx, h); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("%s still valid after revoke all: %v", h, err)
		}
	}
}

func TestTokenRepoExpiry(t *testing.T) {
	repo := NewTokenRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.StoreRefresh(ctx, "hash-old", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := repo.ValidateRefresh(ctx, "hash-old"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expired token accepted: %v", err)
	}
}
