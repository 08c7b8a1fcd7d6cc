// Package repository defines error values that are reused across the
// persistence layer. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrStoreUnavailable indicates that the store
// was accessed before initialization completed (retryable once the
// database is open), while ErrStoreIO marks a real read/write failure
// of the underlying database.
package repository

import "errors"

// ErrStoreUnavailable is returned when a repository is used before the
// database handle has been opened and migrated, or after it was closed.
// The operation was not attempted; callers may retry after ensuring
// initialization.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrStoreIO wraps any underlying database read/write failure. The
// attempted mutation must be treated as not applied. Use errors.Is to
// test for it; the wrapped message carries the driver error.
var ErrStoreIO = errors.New("store i/o failure")
