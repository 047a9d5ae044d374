package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

// dateRange holds --from/--to flag values.
type dateRange struct {
	From string
	To   string
}

// resolve parses the range. An empty From means the first day of To's month;
// an empty To means today.
func (r dateRange) resolve(today time.Time) (time.Time, time.Time, error) {
	end := today
	if r.To != "" {
		d, err := domain.ParseDate(r.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to must be YYYY-MM-DD: %w", domain.ErrInvalidInput)
		}
		end = d
	}
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	if r.From != "" {
		d, err := domain.ParseDate(r.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from must be YYYY-MM-DD: %w", domain.ErrInvalidInput)
		}
		start = d
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s: %w",
			end.Format(domain.DateLayout), start.Format(domain.DateLayout), domain.ErrInvalidRange)
	}
	return start, end, nil
}
