package growatt

import (
	"net/url"
	"strconv"
	"time"
)

// dateFormat is the vendor's date convention for all v1 endpoints.
const dateFormat = "2006-01-02"

// Pagination selects a result page on listing endpoints. Zero values leave
// the vendor defaults in place (page 1, 20 per page, max 100).
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("perpage", strconv.Itoa(p.PerPage))
	}
}

// DateRange bounds a history query. Zero Start/End default to today; the
// vendor rejects day-interval windows longer than 7 days, which is checked
// client-side before any I/O.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// normalize fills missing bounds the way the vendor documents: both empty
// means today, one empty bound copies the other.
func (r DateRange) normalize() DateRange {
	switch {
	case r.Start.IsZero() && r.End.IsZero():
		today := time.Now()
		return DateRange{Start: today, End: today}
	case r.Start.IsZero():
		return DateRange{Start: r.End, End: r.End}
	case r.End.IsZero():
		return DateRange{Start: r.Start, End: r.Start}
	}
	return r
}

func (r DateRange) window() time.Duration {
	return r.End.Sub(r.Start)
}

func (r DateRange) apply(v url.Values) {
	v.Set("start_date", r.Start.Format(dateFormat))
	v.Set("end_date", r.End.Format(dateFormat))
}

// checkHistoryRange validates a history window: chronological order and at
// most 7 days for day-interval queries. Lookbacks beyond the vendor's
// ~95-day horizon are not an error; the vendor answers them with an empty
// result and the client passes that through.
func checkHistoryRange(op string, r DateRange) (DateRange, error) {
	r = r.normalize()
	if r.window() < 0 {
		return r, &ValidationError{Op: op, Reason: "end date before start date"}
	}
	if r.window() >= 7*24*time.Hour {
		return r, &ValidationError{Op: op, Reason: "date interval must not exceed 7 days"}
	}
	return r, nil
}

// checkPlantEnergyRange validates the plant/energy window, whose limits
// differ from the device history endpoints and depend on the aggregation
// unit: day windows may span up to 7 days inclusive, month windows must
// start in the same or the previous year, year windows at most 20 years.
func checkPlantEnergyRange(op string, r DateRange, interval DateInterval) (DateRange, error) {
	r = r.normalize()
	if r.window() < 0 {
		return r, &ValidationError{Op: op, Reason: "end date before start date"}
	}
	switch interval {
	case IntervalYear:
		if r.End.Year()-r.Start.Year() > 20 {
			return r, &ValidationError{Op: op, Reason: "date interval must not exceed 20 years in 'year' mode"}
		}
	case IntervalMonth:
		if r.End.Year()-r.Start.Year() > 1 {
			return r, &ValidationError{Op: op, Reason: "start date must be within same or previous year in 'month' mode"}
		}
	default:
		if r.window() > 7*24*time.Hour {
			return r, &ValidationError{Op: op, Reason: "date interval must not exceed 7 days in 'day' mode"}
		}
	}
	return r, nil
}

func setOptInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setOptString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
