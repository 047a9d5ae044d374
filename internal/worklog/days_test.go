package worklog

import (
	"testing"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDay_AscendingBuckets(t *testing.T) {
	next := day.AddDate(0, 0, 1)
	evs := events(
		domain.StatusStart, next.Add(9*time.Hour),
		domain.StatusStart, at("08:00"),
		domain.StatusStop, at("12:00"),
		domain.StatusStop, next.Add(10*time.Hour),
	)

	days := GroupByDay(evs, time.UTC)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-01-05", days[0].Date.Format(domain.DateLayout))
	assert.Len(t, days[0].Events, 2)
	assert.Equal(t, "2026-01-06", days[1].Date.Format(domain.DateLayout))
	assert.Len(t, days[1].Events, 2)
}

func TestDayReports_MidnightSpanIsNotSplit(t *testing.T) {
	evs := events(
		domain.StatusStart, at("23:30"),
		domain.StatusStop, day.AddDate(0, 0, 1).Add(30*time.Minute),
	)

	reports := DayReports(evs, time.UTC)
	require.Len(t, reports, 2)
	assert.Equal(t, 0, reports[0].TotalMinutes, "unmatched start on the first day")
	assert.Equal(t, 0, reports[1].TotalMinutes, "unmatched stop on the second day")
}

func TestDayReports_HoursAndMinutes(t *testing.T) {
	reports := DayReports(events(
		domain.StatusStart, at("08:15"),
		domain.StatusStop, at("10:00"),
		domain.StatusStart, at("10:30"),
		domain.StatusStop, at("16:00"),
	), time.UTC)

	require.Len(t, reports, 1)
	assert.Equal(t, 7, reports[0].Hours())
	assert.Equal(t, 15, reports[0].Minutes())
}

func TestSnapshot_IncludesOpenSession(t *testing.T) {
	evs := events(
		domain.StatusStart, at("08:00"),
		domain.StatusStop, at("09:00"),
		domain.StatusStart, at("10:00"),
	)

	snap := Snapshot(evs, at("10:25"))
	assert.Equal(t, 85, snap.TotalMinutesToday)
	assert.True(t, snap.Running)
	require.NotNil(t, snap.RunningSince)
	assert.Equal(t, at("10:00"), *snap.RunningSince)
	assert.Equal(t, domain.StatusStart, *snap.LastStatus)
}

func TestSnapshot_NoEvents(t *testing.T) {
	snap := Snapshot(nil, at("10:00"))
	assert.Equal(t, 0, snap.TotalMinutesToday)
	assert.Nil(t, snap.LastStatus)
	assert.False(t, snap.Running)
}
