// Package queue defines message payloads exchanged over the message broker
// and the background consumer that reacts to them.
package queue

// StatusChangedEvent is published after every successful status mutation.
// Consumers use it to drop cached catalog reads for the affected movie and
// to write an audit trail, without querying the status store themselves.
type StatusChangedEvent struct {
    MovieID       int64  `json:"movie_id"`
    Action        string `json:"action"` // toggle_watched, toggle_favorite, toggle_want_to_watch, schedule, remove
    Status        string `json:"status"`
    IsFavorite    bool   `json:"is_favorite"`
    ScheduledDate string `json:"scheduled_date,omitempty"`
    Removed       bool   `json:"removed"`
    ChangedAt     string `json:"changed_at"`
}
