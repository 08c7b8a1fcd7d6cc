package repository

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/movify/movify-server/internal/model"
)

// Timestamp layouts used for the TEXT columns of the movie_status table.
// Timestamps are written in RFC 3339 UTC; scheduled dates carry no time of
// day and are stored as plain calendar dates.
const (
    timestampLayout = time.RFC3339
    dateLayout      = "2006-01-02"
)

// StatusRepo provides data access to the movie_status table: one row per
// movie the user has interacted with.  A movie without a row is equivalent
// to {status: none, not favorite, no scheduled date}; readers must treat
// the two representations as interchangeable.  All timestamps are UTC.
type StatusRepo struct {
    db *sql.DB
}

// NewStatusRepo returns a new StatusRepo bound to the provided database.
func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{db: db} }

// Upsert merges the supplied partial update onto the movie's existing record
// (read-modify-write: nil fields keep their stored value, or the default for
// a movie with no row yet) and refreshes updated_at.  It never fails because
// a record does not exist.  The merged record as stored is returned.
//
// The read and the write are two statements on the store's single
// connection; two concurrent upserts for the same movie are last-write-wins
// on the merged fields.  Callers that need strict ordering must await one
// mutation before issuing the next.
func (r *StatusRepo) Upsert(ctx context.Context, movieID int64, upd model.StatusUpdate) (*model.StatusRecord, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }

    cur, err := r.Get(ctx, movieID)
    if err != nil {
        return nil, err
    }

    // Start from the stored row or the implicit default, then project the
    // supplied fields on top.
    merged := model.StatusRecord{MovieID: movieID, Status: model.StatusNone}
    if cur != nil {
        merged = *cur
    }
    if upd.Status != nil {
        merged.Status = *upd.Status
    }
    if upd.IsFavorite != nil {
        merged.IsFavorite = *upd.IsFavorite
    }
    if upd.ScheduledDate != nil {
        d := model.DateOnly(*upd.ScheduledDate)
        merged.ScheduledDate = &d
    }

    now := time.Now().UTC()
    var sched sql.NullString
    if merged.ScheduledDate != nil {
        sched = sql.NullString{String: merged.ScheduledDate.Format(dateLayout), Valid: true}
    }

    _, err = r.db.ExecContext(ctx, `
        INSERT INTO movie_status (movie_id, status, is_favorite, scheduled_date, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(movie_id) DO UPDATE SET
            status = excluded.status,
            is_favorite = excluded.is_favorite,
            scheduled_date = excluded.scheduled_date,
            updated_at = excluded.updated_at`,
        movieID, string(merged.Status), merged.IsFavorite, sched,
        now.Format(timestampLayout), now.Format(timestampLayout),
    )
    if err != nil {
        return nil, fmt.Errorf("%w: upsert movie %d: %w", ErrStoreIO, movieID, err)
    }
    return r.Get(ctx, movieID)
}

// Get returns the status record for a movie, or (nil, nil) when the movie
// has no row.  Absence is not an error.
func (r *StatusRepo) Get(ctx context.Context, movieID int64) (*model.StatusRecord, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    row := r.db.QueryRowContext(ctx, `
        SELECT id, movie_id, status, is_favorite, scheduled_date, created_at, updated_at
        FROM movie_status WHERE movie_id = ?`, movieID)
    rec, err := scanStatusRecord(row.Scan)
    if err == sql.ErrNoRows {
        return nil, nil
    }
    if err != nil {
        return nil, fmt.Errorf("%w: get movie %d: %w", ErrStoreIO, movieID, err)
    }
    return rec, nil
}

// ListAll returns every status record ordered by most recently touched.
func (r *StatusRepo) ListAll(ctx context.Context) ([]model.StatusRecord, error) {
    return r.list(ctx, `
        SELECT id, movie_id, status, is_favorite, scheduled_date, created_at, updated_at
        FROM movie_status ORDER BY updated_at DESC`)
}

// ListFavorites returns the favorited records ordered by most recently touched.
func (r *StatusRepo) ListFavorites(ctx context.Context) ([]model.StatusRecord, error) {
    return r.list(ctx, `
        SELECT id, movie_id, status, is_favorite, scheduled_date, created_at, updated_at
        FROM movie_status WHERE is_favorite = 1 ORDER BY updated_at DESC`)
}

// ListByStatus returns records holding the given status ordered by most
// recently touched.
func (r *StatusRepo) ListByStatus(ctx context.Context, status model.Status) ([]model.StatusRecord, error) {
    return r.list(ctx, `
        SELECT id, movie_id, status, is_favorite, scheduled_date, created_at, updated_at
        FROM movie_status WHERE status = ? ORDER BY updated_at DESC`, string(status))
}

// Remove deletes the movie's row if present.  Removing an absent row is not
// an error.
func (r *StatusRepo) Remove(ctx context.Context, movieID int64) error {
    if r.db == nil {
        return ErrStoreUnavailable
    }
    if _, err := r.db.ExecContext(ctx, `DELETE FROM movie_status WHERE movie_id = ?`, movieID); err != nil {
        return fmt.Errorf("%w: remove movie %d: %w", ErrStoreIO, movieID, err)
    }
    return nil
}

func (r *StatusRepo) list(ctx context.Context, query string, args ...any) ([]model.StatusRecord, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, fmt.Errorf("%w: list: %w", ErrStoreIO, err)
    }
    defer rows.Close()

    var out []model.StatusRecord
    for rows.Next() {
        rec, err := scanStatusRecord(rows.Scan)
        if err != nil {
            return nil, fmt.Errorf("%w: scan: %w", ErrStoreIO, err)
        }
        out = append(out, *rec)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("%w: list: %w", ErrStoreIO, err)
    }
    return out, nil
}

// scanStatusRecord decodes one movie_status row.  The TEXT date columns are
// parsed here so the rest of the application only sees time.Time values.
func scanStatusRecord(scan func(...any) error) (*model.StatusRecord, error) {
    var (
        rec       model.StatusRecord
        status    string
        sched     sql.NullString
        createdAt string
        updatedAt string
    )
    if err := scan(&rec.ID, &rec.MovieID, &status, &rec.IsFavorite, &sched, &createdAt, &updatedAt); err != nil {
        return nil, err
    }
    rec.Status = model.Status(status)
    if sched.Valid && sched.String != "" {
        d, err := time.Parse(dateLayout, sched.String)
        if err != nil {
            return nil, fmt.Errorf("bad scheduled_date %q: %w", sched.String, err)
        }
        rec.ScheduledDate = &d
    }
    var err error
    if rec.CreatedAt, err = parseStoredTime(createdAt); err != nil {
        return nil, err
    }
    if rec.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
        return nil, err
    }
    return &rec, nil
}

// parseStoredTime accepts both our RFC 3339 writes and SQLite's own
// CURRENT_TIMESTAMP format, which older rows may carry.
func parseStoredTime(s string) (time.Time, error) {
    if t, err := time.Parse(timestampLayout, s); err == nil {
        return t, nil
    }
    t, err := time.Parse("2006-01-02 15:04:05", s)
    if err != nil {
        return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
    }
    return t.UTC(), nil
}
