package model

import "time"

// Status is the user-chosen watch state of a movie.  It is stored as text
// in the movie_status table.  A movie with no row behaves exactly like a
// stored StatusNone with no favorite flag and no scheduled date.
type Status string

const (
    StatusWatched     Status = "watched"
    StatusWantToWatch Status = "want_to_watch"
    StatusNone        Status = "none"
)

// Valid reports whether s is one of the three stored status values.
func (s Status) Valid() bool {
    switch s {
    case StatusWatched, StatusWantToWatch, StatusNone:
        return true
    }
    return false
}

// StatusRecord models a row of the `movie_status` table: the local user
// state attached to one catalog movie.  At most one record exists per
// MovieID (enforced by a UNIQUE constraint).
//
// Fields:
//  ID            – primary key identifier.
//  MovieID       – catalog identifier of the movie; the join key.
//  Status        – watched / want_to_watch / none.
//  IsFavorite    – favorite flag, independent of Status.
//  ScheduledDate – optional date the user intends to watch the movie.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – refreshed on every write; sort key for recent listings.
type StatusRecord struct {
    ID            uint64     // movie_status.id
    MovieID       int64      // movie_status.movie_id
    Status        Status     // movie_status.status
    IsFavorite    bool       // movie_status.is_favorite
    ScheduledDate *time.Time // movie_status.scheduled_date (nullable)
    CreatedAt     time.Time  // movie_status.created_at
    UpdatedAt     time.Time  // movie_status.updated_at
}

// IsDefault reports whether the record carries no user state at all.  Such
// rows are interchangeable with an absent row and the store does not keep
// them around.
func (r *StatusRecord) IsDefault() bool {
    return r.Status == StatusNone && !r.IsFavorite && r.ScheduledDate == nil
}

// StatusUpdate carries a partial update for a movie's status record.  Nil
// fields are preserved from the existing row (or take the default when no
// row exists yet).
type StatusUpdate struct {
    Status        *Status
    IsFavorite    *bool
    ScheduledDate *time.Time
}

// ResolveDisplayStatus collapses a stored status and its scheduled date into
// the single badge the client shows.  Watched always wins.  A want_to_watch
// entry is only displayed while its scheduled date is strictly in the future
// by calendar date; once the date has passed (or was never set) the badge
// disappears even though the stored status is untouched.
func ResolveDisplayStatus(status Status, scheduled *time.Time, now time.Time) Status {
    if status == StatusWatched {
        return StatusWatched
    }
    if status == StatusWantToWatch {
        if scheduled != nil && CompareDates(*scheduled, now) > 0 {
            return StatusWantToWatch
        }
        return StatusNone
    }
    return StatusNone
}

// CompareDates orders two times by calendar date alone, each read in its
// own location: -1 when a's date falls before b's, 0 on the same date, +1
// after.  Stored dates are UTC midnight while the clock is usually local;
// comparing year/month/day fields keeps the two frames from skewing the
// result near midnight.
func CompareDates(a, b time.Time) int {
    av, bv := dateOrdinal(a), dateOrdinal(b)
    switch {
    case av < bv:
        return -1
    case av > bv:
        return 1
    }
    return 0
}

func dateOrdinal(t time.Time) int {
    y, m, d := t.Date()
    return y*10000 + int(m)*100 + d
}

// DateOnly truncates t to midnight in its own location.  Used when storing
// a scheduled date; for comparisons use CompareDates, which is insensitive
// to the location each side was parsed in.
func DateOnly(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
