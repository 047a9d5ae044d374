package worklog

import (
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

// Day is the slice of a user's events that fall on one calendar date.
type Day struct {
	Date   time.Time
	Events []*domain.WorkEvent
}

// GroupByDay buckets events by their calendar date in loc. Days come back in
// ascending order and each bucket keeps chronological order. Sessions that
// cross midnight are not split.
func GroupByDay(events []*domain.WorkEvent, loc *time.Location) []Day {
	var days []Day
	for _, e := range Sorted(events) {
		date := domain.DateOf(e.OccurredAt, loc)
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Events = append(days[n-1].Events, e)
			continue
		}
		days = append(days, Day{Date: date, Events: []*domain.WorkEvent{e}})
	}
	return days
}

// DayReports aggregates each calendar day independently. Only closed
// sessions count towards the totals.
func DayReports(events []*domain.WorkEvent, loc *time.Location) []domain.DayReport {
	days := GroupByDay(events, loc)
	reports := make([]domain.DayReport, 0, len(days))
	for _, d := range days {
		res := Aggregate(d.Events)
		reports = append(reports, domain.DayReport{
			Date:         d.Date,
			TotalMinutes: res.TotalMinutes,
			LastStatus:   res.LastStatus,
			LastStatusAt: res.LastStatusAt,
		})
	}
	return reports
}

// Snapshot builds the live status view for today's events.
func Snapshot(events []*domain.WorkEvent, now time.Time) domain.StatusSnapshot {
	res := Aggregate(events)
	return domain.StatusSnapshot{
		TotalMinutesToday: res.LiveMinutes(now),
		LastStatus:        res.LastStatus,
		LastStatusAt:      res.LastStatusAt,
		Running:           res.Running(),
		RunningSince:      res.OpenSince,
	}
}
