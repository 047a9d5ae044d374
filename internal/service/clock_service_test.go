package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/alexanderramin/staffclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTransition_TwoSessionsSyncDailyTotal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	emp := h.seed(t, "Alice")

	for _, step := range []struct {
		status domain.EventStatus
		at     time.Time
	}{
		{domain.StatusStart, testutil.At(8, 15)},
		{domain.StatusStop, testutil.At(10, 0)},
		{domain.StatusStart, testutil.At(10, 30)},
		{domain.StatusStop, testutil.At(16, 0)},
	} {
		ev, err := h.record(t, emp.ID, step.status, step.at)
		require.NoError(t, err)
		assert.Equal(t, step.status, ev.Status)
		assert.True(t, ev.OccurredAt.Equal(step.at))
	}

	summary, err := h.summaries.GetByUserAndDate(ctx, emp.ID, day(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 435, summary.TotalMinutes, "105 + 330 minutes")
}

func TestRecordTransition_StartSyncsNothing(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)

	_, err = h.summaries.GetByUserAndDate(context.Background(), emp.ID, day(2024, 3, 4))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordTransition_RepeatedStartRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)

	_, err = h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidSequence)

	events, err := h.events.ListByUserAndRange(ctx, emp.ID, testutil.At(0, 0), testutil.At(23, 0))
	require.NoError(t, err)
	assert.Len(t, events, 1, "rejected transition must not be stored")
}

func TestRecordTransition_RepeatedStopRejected(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)
	_, err = h.record(t, emp.ID, domain.StatusStop, testutil.At(10, 0))
	require.NoError(t, err)

	_, err = h.record(t, emp.ID, domain.StatusStop, testutil.At(10, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidSequence)
}

func TestRecordTransition_BareStopRejected(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStop, testutil.At(9, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidSequence)
}

func TestRecordTransition_UnknownAndInactiveUsers(t *testing.T) {
	h := newHarness(t)
	inactive := h.seed(t, "Gone", testutil.WithEmployeeStatus(domain.EmployeeInactive))

	_, err := h.record(t, "nobody", domain.StatusStart, testutil.At(9, 0))
	assert.ErrorIs(t, err, domain.ErrUnknownUser)

	_, err = h.record(t, inactive.ID, domain.StatusStart, testutil.At(9, 0))
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestRecordTransition_InvalidStatus(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.EventStatus("pause"), testutil.At(9, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestRecordTransition_ClockStepBackKeepsOrder(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)
	ev, err := h.record(t, emp.ID, domain.StatusStop, testutil.At(8, 59))
	require.NoError(t, err)
	assert.True(t, ev.OccurredAt.Equal(testutil.At(9, 0)))

	last, err := h.events.MostRecent(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStop, last.Status)
}

func TestRecordTransition_RollbackWhenSyncFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	ok := newHarnessWith(t, database, nil)
	emp := ok.seed(t, "Alice")

	_, err := ok.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)

	uow := testutil.FailOnWriteTo(database, "daily_summaries", fmt.Errorf("injected upsert failure"))
	failing := newHarnessWith(t, database, uow)
	_, err = failing.record(t, emp.ID, domain.StatusStop, testutil.At(10, 0))
	require.Error(t, err)
	assert.Equal(t, int32(1), uow.Failed.Load())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "injected upsert failure")

	last, err := ok.events.MostRecent(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStart, last.Status, "stop event rolled back with the sync")

	_, err = ok.summaries.GetByUserAndDate(ctx, emp.ID, day(2024, 3, 4))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The retry goes through once the store recovers.
	_, err = ok.record(t, emp.ID, domain.StatusStop, testutil.At(10, 0))
	require.NoError(t, err)
	summary, err := ok.summaries.GetByUserAndDate(ctx, emp.ID, day(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 60, summary.TotalMinutes)
}

func TestRecordTransition_ConcurrentStartsOnlyOneWins(t *testing.T) {
	h := newHarnessWith(t, testutil.NewFileTestDB(t), nil)
	emp := h.seed(t, "Double Clicker")
	h.clock.Set(testutil.At(9, 0))

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.Clock.RecordTransition(context.Background(), emp.ID, domain.StatusStart)
		}(i)
	}
	wg.Wait()

	var accepted, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domain.ErrInvalidSequence):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, callers-1, rejected)
}

func TestRecordTransition_AcceptedEventsAlternate(t *testing.T) {
	h := newHarnessWith(t, testutil.NewFileTestDB(t), nil)
	ctx := context.Background()
	emp := h.seed(t, "Alternator")
	h.clock.Set(testutil.At(9, 0))

	rng := rand.New(rand.NewSource(7))
	statuses := make([]domain.EventStatus, 40)
	for i := range statuses {
		if rng.Intn(2) == 0 {
			statuses[i] = domain.StatusStart
		} else {
			statuses[i] = domain.StatusStop
		}
	}

	var wg sync.WaitGroup
	for _, st := range statuses {
		wg.Add(1)
		go func(st domain.EventStatus) {
			defer wg.Done()
			_, err := h.Clock.RecordTransition(ctx, emp.ID, st)
			if err != nil && !errors.Is(err, domain.ErrInvalidSequence) {
				t.Errorf("unexpected error: %v", err)
			}
		}(st)
	}
	wg.Wait()

	events, err := h.events.ListByUserAndRange(ctx, emp.ID, testutil.At(0, 0), testutil.At(23, 0))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, domain.StatusStart, events[0].Status)
	for i := 1; i < len(events); i++ {
		assert.NotEqual(t, events[i-1].Status, events[i].Status, "events %d and %d repeat a status", i-1, i)
	}
}

func TestRecordTransition_ReportsUseCase(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)
	_, err = h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 1))
	require.Error(t, err)

	events := h.observer.named("record_transition")
	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.NotEmpty(t, events[0].Fields["event_id"])
	assert.False(t, events[1].Success)
	assert.ErrorIs(t, events[1].Err, domain.ErrInvalidSequence)
}

func TestTodayStatus_LiveElapsedTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	emp := h.seed(t, "Alice")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(8, 0))
	require.NoError(t, err)
	_, err = h.record(t, emp.ID, domain.StatusStop, testutil.At(8, 30))
	require.NoError(t, err)
	_, err = h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)

	h.clock.Set(testutil.At(9, 42).Add(30 * time.Second))
	snap, err := h.Clock.TodayStatus(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 72, snap.TotalMinutesToday, "30 closed + 42 live")
	assert.True(t, snap.Running)
	require.NotNil(t, snap.LastStatus)
	assert.Equal(t, domain.StatusStart, *snap.LastStatus)
	require.NotNil(t, snap.RunningSince)
	assert.True(t, snap.RunningSince.Equal(testutil.At(9, 0)))

	summary, err := h.summaries.GetByUserAndDate(ctx, emp.ID, day(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 30, summary.TotalMinutes, "persisted total holds closed sessions only")
}

func TestTodayStatus_NoEvents(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	snap, err := h.Clock.TodayStatus(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Zero(t, snap.TotalMinutesToday)
	assert.Nil(t, snap.LastStatus)
	assert.Nil(t, snap.LastStatusAt)
	assert.False(t, snap.Running)
}

func TestTodayStatus_SessionOpenedYesterday(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Night Owl")

	_, err := h.record(t, emp.ID, domain.StatusStart, testutil.At(22, 0))
	require.NoError(t, err)

	h.clock.Set(testutil.At(22, 0).Add(4 * time.Hour))
	snap, err := h.Clock.TodayStatus(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.True(t, snap.Running)
	assert.Zero(t, snap.TotalMinutesToday)
	require.NotNil(t, snap.LastStatus)
	assert.Equal(t, domain.StatusStart, *snap.LastStatus)
}

func TestTodayStatus_UnknownUser(t *testing.T) {
	h := newHarness(t)

	_, err := h.Clock.TodayStatus(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestDaySummaries_GroupsByDay(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	emp := h.seed(t, "Alice")

	next := testutil.At(0, 0).AddDate(0, 0, 1)
	testutil.SeedEvents(t, h.db,
		testutil.NewTestEvent(emp.ID, domain.StatusStart, testutil.At(9, 0)),
		testutil.NewTestEvent(emp.ID, domain.StatusStop, testutil.At(11, 30)),
		testutil.NewTestEvent(emp.ID, domain.StatusStart, next.Add(8*time.Hour)),
		testutil.NewTestEvent(emp.ID, domain.StatusStop, next.Add(9*time.Hour+15*time.Minute)),
	)

	end := day(2024, 3, 6)
	reports, err := h.Clock.DaySummaries(ctx, emp.ID, day(2024, 3, 4), &end)
	require.NoError(t, err)
	require.Len(t, reports, 2, "days without events are omitted")
	assert.Equal(t, 150, reports[0].TotalMinutes)
	assert.Equal(t, 2, reports[0].Hours())
	assert.Equal(t, 30, reports[0].Minutes())
	assert.Equal(t, 75, reports[1].TotalMinutes)
	assert.Equal(t, "2024-03-05", reports[1].Date.Format(domain.DateLayout))
}

func TestDaySummaries_DefaultsEndToToday(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")
	testutil.SeedEvents(t, h.db,
		testutil.NewTestEvent(emp.ID, domain.StatusStart, testutil.At(9, 0)),
		testutil.NewTestEvent(emp.ID, domain.StatusStop, testutil.At(10, 0)),
	)
	h.clock.Set(testutil.At(18, 0))

	reports, err := h.Clock.DaySummaries(context.Background(), emp.ID, day(2024, 3, 1), nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 60, reports[0].TotalMinutes)
}

func TestDaySummaries_InvalidRange(t *testing.T) {
	h := newHarness(t)
	emp := h.seed(t, "Alice")

	end := day(2024, 3, 1)
	_, err := h.Clock.DaySummaries(context.Background(), emp.ID, day(2024, 3, 4), &end)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestForceStop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	emp := h.seed(t, "Alice")

	_, err := h.Clock.ForceStop(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidSequence, "nothing running")

	_, err = h.record(t, emp.ID, domain.StatusStart, testutil.At(9, 0))
	require.NoError(t, err)
	h.clock.Set(testutil.At(9, 20))
	ev, err := h.Clock.ForceStop(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStop, ev.Status)

	summary, err := h.summaries.GetByUserAndDate(ctx, emp.ID, day(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 20, summary.TotalMinutes)

	stops := h.observer.named("force_stop")
	require.Len(t, stops, 2)
	assert.False(t, stops[0].Success)
	assert.True(t, stops[1].Success)

	_, err = h.Clock.ForceStop(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}
