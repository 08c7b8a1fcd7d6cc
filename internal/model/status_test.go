package model

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestResolveDisplayStatus(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	yesterday := now.AddDate(0, 0, -1)

	cases := []struct {
		name      string
		status    Status
		scheduled *time.Time
		want      Status
	}{
		{"watched wins without date", StatusWatched, nil, StatusWatched},
		{"watched wins over future date", StatusWatched, datePtr(tomorrow), StatusWatched},
		{"want to watch with future date", StatusWantToWatch, datePtr(tomorrow), StatusWantToWatch},
		{"want to watch with no date", StatusWantToWatch, nil, StatusNone},
		{"want to watch with past date", StatusWantToWatch, datePtr(yesterday), StatusNone},
		{"want to watch scheduled today", StatusWantToWatch, datePtr(now), StatusNone},
		{"want to watch later today", StatusWantToWatch, datePtr(now.Add(5 * time.Hour)), StatusNone},
		{"none stays none", StatusNone, nil, StatusNone},
		{"none ignores scheduled date", StatusNone, datePtr(tomorrow), StatusNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDisplayStatus(tc.status, tc.scheduled, now)
			if got != tc.want {
				t.Fatalf("ResolveDisplayStatus(%q, %v) = %q, want %q", tc.status, tc.scheduled, got, tc.want)
			}
		})
	}
}

func TestResolveDisplayStatusMidnightBoundary(t *testing.T) {
	// One minute before midnight: a date scheduled for "tomorrow" is still
	// strictly in the future and must be shown.
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	sched := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	if got := ResolveDisplayStatus(StatusWantToWatch, &sched, now); got != StatusWantToWatch {
		t.Fatalf("got %q, want %q", got, StatusWantToWatch)
	}
	// One minute later the same date is today and the badge disappears.
	now = now.Add(2 * time.Minute)
	if got := ResolveDisplayStatus(StatusWantToWatch, &sched, now); got != StatusNone {
		t.Fatalf("got %q, want %q", got, StatusNone)
	}
}

func TestResolveDisplayStatusAcrossTimeZones(t *testing.T) {
	// Dates come out of the store parsed as UTC midnight; the clock runs in
	// the server's zone. The badge must follow local calendar dates.
	east := time.FixedZone("UTC+5", 5*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)
	sched := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)

	// Early morning east of UTC on the scheduled day: same calendar date,
	// so the badge is gone even though the UTC instant is still ahead.
	now := time.Date(2026, time.May, 10, 1, 0, 0, 0, east)
	if got := ResolveDisplayStatus(StatusWantToWatch, &sched, now); got != StatusNone {
		t.Errorf("east of UTC on the day: got %q, want %q", got, StatusNone)
	}

	// Late evening west of UTC the day before: locally still strictly
	// future, so the badge shows.
	now = time.Date(2026, time.May, 9, 23, 0, 0, 0, west)
	if got := ResolveDisplayStatus(StatusWantToWatch, &sched, now); got != StatusWantToWatch {
		t.Errorf("west of UTC the day before: got %q, want %q", got, StatusWantToWatch)
	}
}

func TestCompareDates(t *testing.T) {
	utc := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", utc, utc, 0},
		{"same date, later time", utc, utc.Add(23 * time.Hour), 0},
		{"next day", utc.AddDate(0, 0, 1), utc, 1},
		{"previous day", utc.AddDate(0, 0, -1), utc, -1},
		{"same local date across zones", utc,
			time.Date(2026, time.May, 10, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)), 0},
		{"month boundary", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompareDates(tc.a, tc.b); got != tc.want {
				t.Fatalf("CompareDates(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, time.July, 4, 18, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	want := time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusWatched, StatusWantToWatch, StatusNone} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "WATCHED", "favorite", "scheduled"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestIsDefault(t *testing.T) {
	d := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		rec  StatusRecord
		want bool
	}{
		{"empty record", StatusRecord{Status: StatusNone}, true},
		{"watched", StatusRecord{Status: StatusWatched}, false},
		{"favorite only", StatusRecord{Status: StatusNone, IsFavorite: true}, false},
		{"scheduled only", StatusRecord{Status: StatusNone, ScheduledDate: &d}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.IsDefault(); got != tc.want {
				t.Fatalf("IsDefault() = %v, want %v", got, tc.want)
			}
		})
	}
}
