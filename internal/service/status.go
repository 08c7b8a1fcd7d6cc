package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/movify/movify-server/internal/model"
	"github.com/movify/movify-server/internal/queue"
	"github.com/movify/movify-server/internal/repository"
)

// ErrPastDate is returned when a watch date before today is submitted. The
// mutation is rejected before any write.
var ErrPastDate = errors.New("scheduled date is in the past")

// PublishFunc delivers a status event to the broker. Failures must not fail
// the mutation; the coordinator logs and moves on.
type PublishFunc func(ctx context.Context, event queue.StatusChangedEvent) error

// MutationResult is the outcome of a status mutation: the stored record
// (nil when the mutation removed the row or reduced it to the default) and
// the user-facing notification for it.
type MutationResult struct {
	Record       *model.StatusRecord `json:"record,omitempty"`
	Notification model.Notification  `json:"notification"`
}

// StatusService is the only write path into the status store. Every
// mutation writes through the repository, broadcasts an invalidation event
// for the affected movie, and yields exactly one notification. Store
// failures never escape as panics; the caller gets the error plus an error
// notification, and prior state is unchanged.
//
// Two mutations for the same movie issued without awaiting one another are
// last-write-wins over the merged fields; callers wanting strict ordering
// must serialize their calls.
type StatusService struct {
	repo    *repository.StatusRepo
	publish PublishFunc
	now     func() time.Time
}

// NewStatusService wires the repository and the event publisher. A nil
// publish function disables broadcasting (used by tests).
func NewStatusService(repo *repository.StatusRepo, publish PublishFunc) *StatusService {
	return &StatusService{repo: repo, publish: publish, now: time.Now}
}

// ToggleWatched flips the movie between watched and none, based on the
// status the caller currently displays. Favorite flag and scheduled date
// are untouched.
func (s *StatusService) ToggleWatched(ctx context.Context, movieID int64, current model.Status) (*MutationResult, error) {
	next := model.StatusWatched
	msg := model.NewNotification(model.NotifySuccess, "Marked as watched")
	if current == model.StatusWatched {
		next = model.StatusNone
		msg = model.NewNotification(model.NotifyInfo, "Removed from your lists")
	}
	return s.apply(ctx, movieID, "toggle_watched", model.StatusUpdate{Status: &next}, msg)
}

// ToggleWantToWatch flips the movie between want_to_watch and none.
func (s *StatusService) ToggleWantToWatch(ctx context.Context, movieID int64, current model.Status) (*MutationResult, error) {
	next := model.StatusWantToWatch
	msg := model.NewNotification(model.NotifyInfo, "Added to your watch list")
	if current == model.StatusWantToWatch {
		next = model.StatusNone
		msg = model.NewNotification(model.NotifyInfo, "Removed from your lists")
	}
	return s.apply(ctx, movieID, "toggle_want_to_watch", model.StatusUpdate{Status: &next}, msg)
}

// ToggleFavorite flips the favorite flag; watch status is untouched.
func (s *StatusService) ToggleFavorite(ctx context.Context, movieID int64, currentFavorite bool) (*MutationResult, error) {
	next := !currentFavorite
	msg := model.NewNotification(model.NotifyInfo, "Added to favorites")
	if !next {
		msg = model.NewNotification(model.NotifyInfo, "Removed from favorites")
	}
	return s.apply(ctx, movieID, "toggle_favorite", model.StatusUpdate{IsFavorite: &next}, msg)
}

// ScheduleWatchDate stores a future watch date and forces the status to
// want_to_watch regardless of what it was; scheduling always implies
// intent to watch. A date before today (by calendar date) is rejected with
// a validation error and no write.
func (s *StatusService) ScheduleWatchDate(ctx context.Context, movieID int64, date time.Time) (*MutationResult, error) {
	day := model.DateOnly(date)
	if model.CompareDates(date, s.now()) < 0 {
		return &MutationResult{
			Notification: model.NewNotification(model.NotifyError, "Pick a future date to schedule."),
		}, ErrPastDate
	}
	status := model.StatusWantToWatch
	msg := model.NewNotification(model.NotifySuccess,
		fmt.Sprintf("Watch date saved for %s", day.Format("2006-01-02")))
	return s.apply(ctx, movieID, "schedule", model.StatusUpdate{Status: &status, ScheduledDate: &day}, msg)
}

// Remove deletes the movie's status row outright. Removing an absent row
// succeeds.
func (s *StatusService) Remove(ctx context.Context, movieID int64) (*MutationResult, error) {
	if err := s.repo.Remove(ctx, movieID); err != nil {
		return &MutationResult{Notification: storeErrorNotification()}, err
	}
	s.broadcast(ctx, movieID, "remove", nil, true)
	return &MutationResult{
		Notification: model.NewNotification(model.NotifyInfo, "Removed from your lists"),
	}, nil
}

// apply writes the partial update through the store, prunes a row reduced
// to the all-default state, and broadcasts the change.
func (s *StatusService) apply(ctx context.Context, movieID int64, action string, upd model.StatusUpdate, success model.Notification) (*MutationResult, error) {
	rec, err := s.repo.Upsert(ctx, movieID, upd)
	if err != nil {
		return &MutationResult{Notification: storeErrorNotification()}, err
	}

	removed := false
	if rec != nil && rec.IsDefault() {
		// The store does not keep rows that carry no state.
		if err := s.repo.Remove(ctx, movieID); err != nil {
			return &MutationResult{Notification: storeErrorNotification()}, err
		}
		rec = nil
		removed = true
	}

	s.broadcast(ctx, movieID, action, rec, removed)
	return &MutationResult{Record: rec, Notification: success}, nil
}

// broadcast publishes the invalidation event; a broker failure is logged
// and otherwise ignored so the mutation still succeeds.
func (s *StatusService) broadcast(ctx context.Context, movieID int64, action string, rec *model.StatusRecord, removed bool) {
	if s.publish == nil {
		return
	}
	ev := queue.StatusChangedEvent{
		MovieID:   movieID,
		Action:    action,
		Status:    string(model.StatusNone),
		Removed:   removed,
		ChangedAt: s.now().UTC().Format(time.RFC3339),
	}
	if rec != nil {
		ev.Status = string(rec.Status)
		ev.IsFavorite = rec.IsFavorite
		if rec.ScheduledDate != nil {
			ev.ScheduledDate = rec.ScheduledDate.Format("2006-01-02")
		}
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("status: publish %s for movie %d failed: %v", action, movieID, err)
	}
}

func storeErrorNotification() model.Notification {
	return model.NewNotification(model.NotifyError, "Could not update movie status")
}
