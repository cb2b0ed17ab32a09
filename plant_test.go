package growatt

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestPlantEnergyHistorySevenDayWindow(t *testing.T) {
	var gotStart, gotEnd, gotUnit string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/plant/energy" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotStart, gotEnd, gotUnit = q.Get("start_date"), q.Get("end_date"), q.Get("time_unit")
		_, _ = w.Write([]byte(`{
			"data": {"count": 1, "time_unit": "day", "energys": [{"date": "2026-08-01", "energy": "36"}]},
			"error_code": 0,
			"error_msg": ""
		}`))
	}))

	// a full 7-day span is within the vendor limit for day mode
	r := DateRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
	}
	hist, err := client.Plant.EnergyHistory(1234567, r, IntervalDay, Pagination{})
	if err != nil {
		t.Fatalf("EnergyHistory() error = %v", err)
	}
	if gotStart != "2026-08-01" || gotEnd != "2026-08-08" || gotUnit != "day" {
		t.Errorf("query = %s..%s unit %s", gotStart, gotEnd, gotUnit)
	}
	if hist.Data.Count != 1 || hist.Data.Energys[0].Energy != "36" {
		t.Errorf("history = %+v", hist.Data)
	}
}

func TestPlantEnergyHistoryIntervalLimits(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	cases := []struct {
		interval DateInterval
		start    time.Time
		end      time.Time
	}{
		{IntervalDay, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)},
		{IntervalMonth, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{IntervalYear, time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i, c := range cases {
		_, err := client.Plant.EnergyHistory(1234567, DateRange{Start: c.start, End: c.end}, c.interval, Pagination{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("case %d (%s): error = %v, want *ValidationError", i, c.interval, err)
		}
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (validated before I/O)", requests)
	}
}

func TestPlantByDeviceNestedPlant(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/plant/sn_plant" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"data": {"plant": {"plant_id": 1234567, "name": "Balcony", "status": 1, "country": "Germany", "city": "Berlin", "peak_power": 0.8, "current_power": "0.1", "total_energy": 12.5}},
			"error_code": 0,
			"error_msg": ""
		}`))
	}))

	info, err := client.Plant.ByDevice("BZP0000000")
	if err != nil {
		t.Fatalf("ByDevice() error = %v", err)
	}
	if info.Data.Plant.PlantID != 1234567 || info.Data.Plant.Name != "Balcony" {
		t.Errorf("plant = %+v", info.Data.Plant)
	}
}
