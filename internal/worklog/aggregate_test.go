package worklog

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

func events(pairs ...any) []*domain.WorkEvent {
	var out []*domain.WorkEvent
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, &domain.WorkEvent{
			ID:         fmt.Sprintf("ev-%d", i/2),
			Seq:        int64(i/2 + 1),
			UserID:     "u1",
			Status:     pairs[i].(domain.EventStatus),
			OccurredAt: pairs[i+1].(time.Time),
		})
	}
	return out
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	assert.Equal(t, 0, res.TotalMinutes)
	assert.Nil(t, res.LastStatus)
	assert.Nil(t, res.LastStatusAt)
	assert.False(t, res.Running())
}

func TestAggregate_TwoSessionsSameDay(t *testing.T) {
	res := Aggregate(events(
		domain.StatusStart, at("08:15"),
		domain.StatusStop, at("10:00"),
		domain.StatusStart, at("10:30"),
		domain.StatusStop, at("16:00"),
	))

	assert.Equal(t, 435, res.TotalMinutes, "105 + 330 minutes")
	require.Len(t, res.Windows, 2)
	assert.Equal(t, 105, res.Windows[0].Minutes())
	assert.Equal(t, 330, res.Windows[1].Minutes())
	require.NotNil(t, res.LastStatus)
	assert.Equal(t, domain.StatusStop, *res.LastStatus)
	assert.Equal(t, at("16:00"), *res.LastStatusAt)
	assert.Empty(t, res.Anomalies)
}

func TestAggregate_SingleStartOnly(t *testing.T) {
	res := Aggregate(events(domain.StatusStart, at("09:00")))

	assert.Equal(t, 0, res.TotalMinutes, "closed view excludes the open session")
	assert.True(t, res.Running())
	assert.Equal(t, 42, res.LiveMinutes(at("09:42").Add(59*time.Second)), "live view truncates to whole minutes")
	require.NotNil(t, res.LastStatus)
	assert.Equal(t, domain.StatusStart, *res.LastStatus)
}

func TestAggregate_UnmatchedStopIgnored(t *testing.T) {
	res := Aggregate(events(domain.StatusStop, at("09:00")))

	assert.Equal(t, 0, res.TotalMinutes)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, AnomalyUnmatchedStop, res.Anomalies[0].Kind)
	require.NotNil(t, res.LastStatus)
	assert.Equal(t, domain.StatusStop, *res.LastStatus)
}

func TestAggregate_RepeatedStartKeepsFirst(t *testing.T) {
	res := Aggregate(events(
		domain.StatusStart, at("09:00"),
		domain.StatusStart, at("09:30"),
		domain.StatusStop, at("10:00"),
	))

	assert.Equal(t, 60, res.TotalMinutes, "session is measured from the first start")
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, AnomalyRepeatedStart, res.Anomalies[0].Kind)
	assert.Equal(t, "ev-1", res.Anomalies[0].EventID)
}

func TestAggregate_UnknownStatusIgnored(t *testing.T) {
	res := Aggregate(events(
		domain.StatusStart, at("09:00"),
		domain.EventStatus("pause"), at("09:10"),
		domain.StatusStop, at("09:20"),
	))

	assert.Equal(t, 20, res.TotalMinutes)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, AnomalyUnknownStatus, res.Anomalies[0].Kind)
}

func TestAggregate_SubMinuteSessionCountsZero(t *testing.T) {
	res := Aggregate(events(
		domain.StatusStart, at("09:00"),
		domain.StatusStop, at("09:00").Add(59*time.Second),
	))
	assert.Equal(t, 0, res.TotalMinutes)
	require.Len(t, res.Windows, 1)
}

func TestAggregate_SortsOutOfOrderInput(t *testing.T) {
	evs := events(
		domain.StatusStop, at("10:00"),
		domain.StatusStart, at("09:00"),
	)

	res := Aggregate(evs)
	assert.Equal(t, 60, res.TotalMinutes)
	assert.Equal(t, domain.StatusStop, evs[0].Status, "input slice must not be reordered")
}

func TestAggregate_TiesBrokenBySeq(t *testing.T) {
	same := at("09:00")
	evs := []*domain.WorkEvent{
		{ID: "b", Seq: 2, Status: domain.StatusStop, OccurredAt: same},
		{ID: "a", Seq: 1, Status: domain.StatusStart, OccurredAt: same},
	}

	res := Aggregate(evs)
	assert.Empty(t, res.Anomalies)
	assert.Equal(t, 0, res.TotalMinutes)
	assert.Equal(t, domain.StatusStop, *res.LastStatus)
}

func TestAggregate_Additivity(t *testing.T) {
	t0, t1, t2, t3 := at("07:03"), at("11:47"), at("11:47"), at("18:12")
	res := Aggregate(events(
		domain.StatusStart, t0,
		domain.StatusStop, t1,
		domain.StatusStart, t2,
		domain.StatusStop, t3,
	))
	assert.Equal(t, WholeMinutes(t0, t1)+WholeMinutes(t2, t3), res.TotalMinutes)
}

func TestWholeMinutes(t *testing.T) {
	base := at("09:00")
	assert.Equal(t, 0, WholeMinutes(base, base))
	assert.Equal(t, 0, WholeMinutes(base, base.Add(-time.Hour)), "never negative")
	assert.Equal(t, 1, WholeMinutes(base, base.Add(119*time.Second)), "floors, never rounds up")
	assert.Equal(t, 90, WholeMinutes(base, base.Add(90*time.Minute)))
}

// TestAggregate_Invariants_NeverNegative property-tests that arbitrary,
// possibly malformed sequences never yield a negative or inflated total.
func TestAggregate_Invariants_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	statuses := []domain.EventStatus{domain.StatusStart, domain.StatusStop, "bogus"}

	for trial := 0; trial < 300; trial++ {
		n := rng.Intn(12)
		evs := make([]*domain.WorkEvent, n)
		for i := range evs {
			evs[i] = &domain.WorkEvent{
				ID:         fmt.Sprintf("t%d-%d", trial, i),
				Seq:        int64(i),
				Status:     statuses[rng.Intn(len(statuses))],
				OccurredAt: day.Add(time.Duration(rng.Intn(24*60*60)) * time.Second),
			}
		}

		res := Aggregate(evs)
		assert.GreaterOrEqual(t, res.TotalMinutes, 0, "trial %d", trial)
		assert.LessOrEqual(t, res.TotalMinutes, 24*60, "trial %d: total cannot exceed the span of a day", trial)

		sum := 0
		for _, w := range res.Windows {
			assert.False(t, w.Stop.Before(w.Start), "trial %d: window must not run backwards", trial)
			sum += w.Minutes()
		}
		assert.Equal(t, sum, res.TotalMinutes, "trial %d: total is the sum of closed windows", trial)
	}
}
