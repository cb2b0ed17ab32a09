package growatt

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func TestCheckHistoryRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }

	if _, err := checkHistoryRange("op", DateRange{Start: day(1), End: day(7)}); err != nil {
		t.Errorf("7-day window rejected: %v", err)
	}

	var verr *ValidationError
	if _, err := checkHistoryRange("op", DateRange{Start: day(1), End: day(9)}); !errors.As(err, &verr) {
		t.Errorf("8-day window error = %v, want *ValidationError", err)
	}
	if _, err := checkHistoryRange("op", DateRange{Start: day(7), End: day(1)}); !errors.As(err, &verr) {
		t.Errorf("reversed window error = %v, want *ValidationError", err)
	}
}

func TestCheckPlantEnergyRange(t *testing.T) {
	day := func(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
	var verr *ValidationError

	// day mode allows exactly 7 days, unlike the device history endpoints
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 8)}, IntervalDay); err != nil {
		t.Errorf("7-day window rejected: %v", err)
	}
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2026, 8, 1), End: day(2026, 8, 9)}, IntervalDay); !errors.As(err, &verr) {
		t.Errorf("8-day window error = %v, want *ValidationError", err)
	}

	// month mode: start must lie in the same or the previous year
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2025, 1, 1), End: day(2026, 12, 1)}, IntervalMonth); err != nil {
		t.Errorf("previous-year month window rejected: %v", err)
	}
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2024, 1, 1), End: day(2026, 1, 1)}, IntervalMonth); !errors.As(err, &verr) {
		t.Errorf("two-year month window error = %v, want *ValidationError", err)
	}

	// year mode: at most 20 years
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2006, 1, 1), End: day(2026, 1, 1)}, IntervalYear); err != nil {
		t.Errorf("20-year window rejected: %v", err)
	}
	if _, err := checkPlantEnergyRange("op", DateRange{Start: day(2005, 1, 1), End: day(2026, 1, 1)}, IntervalYear); !errors.As(err, &verr) {
		t.Errorf("21-year window error = %v, want *ValidationError", err)
	}
}

func TestDateRangeNormalize(t *testing.T) {
	d := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	r := DateRange{Start: d}.normalize()
	if !r.End.Equal(d) {
		t.Errorf("missing end = %v, want copied start", r.End)
	}
	r = DateRange{End: d}.normalize()
	if !r.Start.Equal(d) {
		t.Errorf("missing start = %v, want copied end", r.Start)
	}
	r = DateRange{}.normalize()
	if r.Start.IsZero() || !r.Start.Equal(r.End) {
		t.Errorf("empty range = %+v, want today twice", r)
	}
}

func TestDateRangeApply(t *testing.T) {
	v := url.Values{}
	DateRange{
		Start: time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
	}.apply(v)
	if v.Get("start_date") != "2026-08-19" || v.Get("end_date") != "2026-08-25" {
		t.Errorf("date params = %v", v)
	}
}

func TestPaginationApply(t *testing.T) {
	v := url.Values{}
	Pagination{}.apply(v)
	if len(v) != 0 {
		t.Errorf("zero pagination set params: %v", v)
	}
	Pagination{Page: 2, PerPage: 50}.apply(v)
	if v.Get("page") != "2" || v.Get("perpage") != "50" {
		t.Errorf("pagination params = %v", v)
	}
}
