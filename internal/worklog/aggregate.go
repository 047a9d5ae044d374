// Package worklog reconstructs worked time from start/stop event logs.
//
// Aggregation is a pure replay of an immutable, time-ordered event list.
// Nothing here touches storage; callers load events and persist results.
package worklog

import (
	"cmp"
	"slices"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

// AnomalyKind classifies an event that could not be paired.
type AnomalyKind string

const (
	// AnomalyRepeatedStart is a START seen while a session was already open.
	AnomalyRepeatedStart AnomalyKind = "repeated_start"
	// AnomalyUnmatchedStop is a STOP seen with no open session.
	AnomalyUnmatchedStop AnomalyKind = "unmatched_stop"
	// AnomalyUnknownStatus is an event whose status is outside the closed set.
	AnomalyUnknownStatus AnomalyKind = "unknown_status"
)

// Anomaly records a tolerated, ignored event.
type Anomaly struct {
	Kind    AnomalyKind
	EventID string
	At      time.Time
}

// Window is a matched START/STOP pair.
type Window struct {
	Start time.Time
	Stop  time.Time
}

// Minutes is the window length in whole minutes.
func (w Window) Minutes() int {
	return WholeMinutes(w.Start, w.Stop)
}

// Result is the outcome of one aggregation pass.
//
// TotalMinutes counts closed windows only. OpenSince is set when the final
// session has no STOP yet; LiveMinutes adds its elapsed time for display.
type Result struct {
	TotalMinutes int
	LastStatus   *domain.EventStatus
	LastStatusAt *time.Time
	OpenSince    *time.Time
	Windows      []Window
	Anomalies    []Anomaly
}

// Running reports whether the replay ended inside an open session.
func (r Result) Running() bool {
	return r.OpenSince != nil
}

// LiveMinutes returns TotalMinutes plus the elapsed whole minutes of an open
// session measured up to now.
func (r Result) LiveMinutes(now time.Time) int {
	if r.OpenSince == nil {
		return r.TotalMinutes
	}
	return r.TotalMinutes + WholeMinutes(*r.OpenSince, now)
}

// Aggregate replays events in chronological order (OccurredAt, then Seq) and
// sums matched START/STOP windows. It never fails: unmatched or unknown
// events are skipped and reported in Result.Anomalies.
func Aggregate(events []*domain.WorkEvent) Result {
	ordered := Sorted(events)

	var res Result
	var openStart *time.Time

	for _, e := range ordered {
		switch e.Status {
		case domain.StatusStart:
			if openStart != nil {
				res.Anomalies = append(res.Anomalies, Anomaly{Kind: AnomalyRepeatedStart, EventID: e.ID, At: e.OccurredAt})
				continue
			}
			at := e.OccurredAt
			openStart = &at
		case domain.StatusStop:
			if openStart == nil {
				res.Anomalies = append(res.Anomalies, Anomaly{Kind: AnomalyUnmatchedStop, EventID: e.ID, At: e.OccurredAt})
				continue
			}
			w := Window{Start: *openStart, Stop: e.OccurredAt}
			res.Windows = append(res.Windows, w)
			res.TotalMinutes += w.Minutes()
			openStart = nil
		default:
			res.Anomalies = append(res.Anomalies, Anomaly{Kind: AnomalyUnknownStatus, EventID: e.ID, At: e.OccurredAt})
		}
	}

	if n := len(ordered); n > 0 {
		last := ordered[n-1]
		status := last.Status
		at := last.OccurredAt
		res.LastStatus = &status
		res.LastStatusAt = &at
	}
	res.OpenSince = openStart
	return res
}

// WholeMinutes returns the floor of to-from in minutes, or 0 when to is not
// after from.
func WholeMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Sorted returns a chronologically ordered copy of events, leaving the input
// untouched. Nil entries are dropped.
func Sorted(events []*domain.WorkEvent) []*domain.WorkEvent {
	out := make([]*domain.WorkEvent, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.WorkEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out
}
