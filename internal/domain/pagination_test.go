package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPagination_PerPage(t *testing.T) {
	p := DefaultPagination()
	cases := []struct {
		requested int
		want      int
	}{
		{0, 15},
		{-4, 15},
		{1, 3},
		{3, 3},
		{50, 50},
		{500, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.PerPage(tc.requested), "requested=%d", tc.requested)
	}
}

func TestNewPage_TotalPages(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 1, 3, 5)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext())

	last := NewPage([]int{4, 5}, 2, 3, 5)
	assert.False(t, last.HasNext())

	empty := NewPage[int](nil, 0, 15, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
	assert.NotNil(t, empty.Items)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	late := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-01", DateOf(late, time.UTC).Format(DateLayout))
	assert.Equal(t, "2026-03-02", DateOf(late, loc).Format(DateLayout))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	start, end := DayBounds(date, loc)
	assert.Equal(t, time.Date(2026, 1, 10, 5, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
