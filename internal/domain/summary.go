package domain

import "time"

// MaxNotesLength bounds the free-text notes on a daily summary, in runes.
const MaxNotesLength = 2000

// DailySummary is the persisted closed-session total for one user and day.
type DailySummary struct {
	ID           string
	UserID       string
	WorkDate     time.Time
	TotalMinutes int
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayReport is the on-demand aggregation of one calendar day of events.
type DayReport struct {
	Date         time.Time
	TotalMinutes int
	LastStatus   *EventStatus
	LastStatusAt *time.Time
}

// Hours and Minutes split TotalMinutes for display.
func (d DayReport) Hours() int   { return d.TotalMinutes / 60 }
func (d DayReport) Minutes() int { return d.TotalMinutes % 60 }

// StatusSnapshot is the live view behind the running timer. TotalMinutesToday
// includes the elapsed time of a session that is still open.
type StatusSnapshot struct {
	TotalMinutesToday int
	LastStatus        *EventStatus
	LastStatusAt      *time.Time
	Running           bool
	RunningSince      *time.Time
}
