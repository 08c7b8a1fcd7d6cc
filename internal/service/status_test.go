package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/movify/movify-server/internal/database"
	"github.com/movify/movify-server/internal/model"
	"github.com/movify/movify-server/internal/queue"
	"github.com/movify/movify-server/internal/repository"
)

func newTestRepo(t *testing.T) (*repository.StatusRepo, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewStatusRepo(db), db
}

// capturePublisher records every event handed to the publish hook.
type capturePublisher struct {
	events []queue.StatusChangedEvent
	err    error
}

func (p *capturePublisher) publish(_ context.Context, ev queue.StatusChangedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func TestToggleWatchedRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	pub := &capturePublisher{}
	svc := NewStatusService(repo, pub.publish)
	ctx := context.Background()

	res, err := svc.ToggleWatched(ctx, 550, model.StatusNone)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if res.Record == nil || res.Record.Status != model.StatusWatched {
		t.Fatalf("expected watched record, got %+v", res.Record)
	}
	if res.Notification.Kind != model.NotifySuccess {
		t.Errorf("notification kind = %q", res.Notification.Kind)
	}

	// Toggling again from the watched state returns the movie to default and
	// the now-empty row is pruned.
	res, err = svc.ToggleWatched(ctx, 550, model.StatusWatched)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if res.Record != nil {
		t.Fatalf("expected pruned record, got %+v", res.Record)
	}
	stored, err := repo.Get(ctx, 550)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored != nil {
		t.Fatalf("default row survived: %+v", stored)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	if !pub.events[1].Removed {
		t.Errorf("second event should mark removal: %+v", pub.events[1])
	}
}

func TestToggleWatchedKeepsFavorite(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	ctx := context.Background()

	if _, err := svc.ToggleFavorite(ctx, 550, false); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if _, err := svc.ToggleWatched(ctx, 550, model.StatusNone); err != nil {
		t.Fatalf("watched: %v", err)
	}
	// Un-watching leaves the favorite flag, so the row must survive.
	res, err := svc.ToggleWatched(ctx, 550, model.StatusWatched)
	if err != nil {
		t.Fatalf("unwatch: %v", err)
	}
	if res.Record == nil || !res.Record.IsFavorite || res.Record.Status != model.StatusNone {
		t.Fatalf("favorite lost on unwatch: %+v", res.Record)
	}
}

func TestToggleFavoriteIndependentOfStatus(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	ctx := context.Background()

	if _, err := svc.ToggleWantToWatch(ctx, 603, model.StatusNone); err != nil {
		t.Fatalf("want to watch: %v", err)
	}
	res, err := svc.ToggleFavorite(ctx, 603, false)
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if res.Record.Status != model.StatusWantToWatch || !res.Record.IsFavorite {
		t.Fatalf("got %+v", res.Record)
	}

	res, err = svc.ToggleFavorite(ctx, 603, true)
	if err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if res.Record == nil || res.Record.IsFavorite || res.Record.Status != model.StatusWantToWatch {
		t.Fatalf("status lost on unfavorite: %+v", res.Record)
	}
}

func TestFavoriteCreatesRowAndShowsInFavorites(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	ctx := context.Background()

	// No record yet: favoriting must create one with a default status.
	res, err := svc.ToggleFavorite(ctx, 550, false)
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if res.Record.MovieID != 550 || !res.Record.IsFavorite || res.Record.Status != model.StatusNone {
		t.Fatalf("got %+v", res.Record)
	}

	favs, err := repo.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].MovieID != 550 {
		t.Fatalf("favorites = %+v", favs)
	}
}

func TestScheduleRejectsPastDate(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	past := time.Date(2026, time.May, 9, 0, 0, 0, 0, time.UTC)
	res, err := svc.ScheduleWatchDate(ctx, 27205, past)
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	if res == nil || res.Notification.Kind != model.NotifyError {
		t.Fatalf("expected error notification, got %+v", res)
	}

	// The rejected mutation must not have touched the store.
	stored, err := repo.Get(ctx, 27205)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored != nil {
		t.Fatalf("store changed by rejected mutation: %+v", stored)
	}
}

func TestScheduleAcceptsTodayAndForcesWantToWatch(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, time.May, 10, 23, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	// Scheduling for today is allowed even though the badge will not show.
	today := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	res, err := svc.ScheduleWatchDate(ctx, 27205, today)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if res.Record.Status != model.StatusWantToWatch {
		t.Errorf("status = %q, want want_to_watch", res.Record.Status)
	}
	if res.Record.ScheduledDate == nil || !res.Record.ScheduledDate.Equal(today) {
		t.Errorf("scheduled date = %v", res.Record.ScheduledDate)
	}
	if res.Notification.Kind != model.NotifySuccess {
		t.Errorf("notification kind = %q", res.Notification.Kind)
	}
}

func TestScheduleUsesLocalCalendarDate(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewStatusService(repo, nil)
	ctx := context.Background()

	// A client submits today's local date, parsed as UTC midnight. West of
	// UTC in the evening the UTC date is already tomorrow; the local date is
	// still today and must be accepted.
	west := time.FixedZone("UTC-5", -5*60*60)
	svc.now = func() time.Time { return time.Date(2026, time.May, 10, 20, 0, 0, 0, west) }
	today := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ScheduleWatchDate(ctx, 27205, today); err != nil {
		t.Fatalf("today's local date rejected: %v", err)
	}

	// East of UTC past local midnight, yesterday's local date is past even
	// though the UTC clock has not rolled over yet.
	east := time.FixedZone("UTC+5", 5*60*60)
	svc.now = func() time.Time { return time.Date(2026, time.May, 11, 1, 0, 0, 0, east) }
	yesterday := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ScheduleWatchDate(ctx, 27205, yesterday); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
}

func TestRemoveBroadcastsAndSucceedsWhenAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)
	pub := &capturePublisher{}
	svc := NewStatusService(repo, pub.publish)
	ctx := context.Background()

	res, err := svc.Remove(ctx, 98765)
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if res.Record != nil {
		t.Fatalf("unexpected record: %+v", res.Record)
	}
	if len(pub.events) != 1 || !pub.events[0].Removed || pub.events[0].MovieID != 98765 {
		t.Fatalf("bad event: %+v", pub.events)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	repo, _ := newTestRepo(t)
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := NewStatusService(repo, pub.publish)
	ctx := context.Background()

	res, err := svc.ToggleWatched(ctx, 550, model.StatusNone)
	if err != nil {
		t.Fatalf("mutation failed on publish error: %v", err)
	}
	if res.Record == nil || res.Record.Status != model.StatusWatched {
		t.Fatalf("got %+v", res.Record)
	}
	// The write still landed.
	stored, err := repo.Get(ctx, 550)
	if err != nil || stored == nil {
		t.Fatalf("stored = %+v, err = %v", stored, err)
	}
}

func TestStoreFailureYieldsErrorNotification(t *testing.T) {
	svc := NewStatusService(repository.NewStatusRepo(nil), nil)
	ctx := context.Background()

	res, err := svc.ToggleWatched(ctx, 550, model.StatusNone)
	if !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if res == nil || res.Notification.Kind != model.NotifyError {
		t.Fatalf("expected error notification, got %+v", res)
	}
}
