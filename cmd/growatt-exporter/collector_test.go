package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/pvwatch/growatt-go"
)

func newTestCollector(t *testing.T, handler http.Handler) *Collector {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	client := growatt.New(growatt.Config{
		ServerURL: server.URL,
		Token:     "test-token",
		Logger:    log,
	})
	return NewCollector(client, []int{1234567}, log)
}

func TestCollectorDescribe(t *testing.T) {
	collector := newTestCollector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	descCh := make(chan *prometheus.Desc, 20)
	go func() {
		collector.Describe(descCh)
		close(descCh)
	}()

	count := 0
	for range descCh {
		count++
	}
	if count != 8 {
		t.Errorf("described %d metrics, want 8", count)
	}
}

func TestCollectorCollect(t *testing.T) {
	collector := newTestCollector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/plant/data":
			_, _ = w.Write([]byte(`{"data": {"current_power": 123.5, "peak_power_actual": 800, "today_energy": "2.4", "total_energy": "512.8", "monthly_energy": "", "yearly_energy": "", "timezone": "GMT+1", "last_update_time": "", "carbon_offset": "", "efficiency": ""}, "error_code": 0, "error_msg": ""}`))
		case "/v1/plant/details":
			_, _ = w.Write([]byte(`{"data": {"name": "Balcony", "city": "Berlin", "country": "Germany", "peak_power": 0.8}, "error_code": 0, "error_msg": ""}`))
		case "/v1/device/list":
			_, _ = w.Write([]byte(`{"data": {"count": 1, "devices": [{"device_sn": "BZP0000000", "type": 7, "status": 1, "lost": false}]}, "error_code": 0, "error_msg": ""}`))
		case "/v1/device/inverter/day_energy":
			_, _ = w.Write([]byte(`{"data": 2.4, "datalogger_sn": "QMN000BZP0000000", "device_sn": "BZP0000000", "error_code": 0, "error_msg": ""}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	registry := prometheus.NewPedanticRegistry()
	if err := registry.Register(collector); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{
		"growatt_scrape_success",
		"growatt_plant_current_power_watts",
		"growatt_plant_energy_today_kwh",
		"growatt_device_status",
		"growatt_device_energy_today_kwh",
	} {
		if !found[want] {
			t.Errorf("metric %s missing from scrape", want)
		}
	}
}

func TestCollectorScrapeFailure(t *testing.T) {
	collector := newTestCollector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	registry := prometheus.NewPedanticRegistry()
	if err := registry.Register(collector); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != "growatt_scrape_success" {
			t.Errorf("unexpected metric family %s on failed scrape", mf.GetName())
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetGauge().GetValue() != 0 {
				t.Errorf("growatt_scrape_success = %v, want 0", m.GetGauge().GetValue())
			}
		}
	}
}
