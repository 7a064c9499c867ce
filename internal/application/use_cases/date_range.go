package use_cases

import (
	"fmt"
	"time"

	domainErrors "github.com/Skye-project/phantom-mask/internal/domain/errors"
)

const dateLayout = "2006-01-02"

// parseDateRange turns optional "YYYY-MM-DD" bounds into timestamps. The lower
// bound is the start of startDate's day, the upper bound the last second of
// endDate's day, so the end date is fully inclusive. Empty strings yield nil
// (open) bounds.
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date %q: %w", startDate, domainErrors.ErrInvalidDate)
		}
		from = &t
	}

	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date %q: %w", endDate, domainErrors.ErrInvalidDate)
		}
		endOfDay := t.Add(24*time.Hour - time.Second)
		to = &endOfDay
	}

	return from, to, nil
}
