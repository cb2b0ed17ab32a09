package growatt

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func TestVppSoc(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/device/vpp/getSocData" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("vppSn") != "MIXECN6000" {
			t.Errorf("vppSn = %q", r.PostForm.Get("vppSn"))
		}
		_, _ = w.Write([]byte(`{"error_code": 0, "error_msg": "", "soc": 65.0, "datalogger_sn": "JPC5A11700", "device_sn": "MIXECN6000"}`))
	}))

	soc, err := client.Vpp.Soc("MIXECN6000")
	if err != nil {
		t.Fatalf("Soc() error = %v", err)
	}
	if soc.Soc != 65.0 {
		t.Errorf("Soc = %v, want 65", soc.Soc)
	}
}

func TestVppWriteValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid write must not reach the server")
	}))

	var verr *ValidationError
	if _, err := client.Vpp.Write("MIXECN6000", 60, 101); !errors.As(err, &verr) {
		t.Errorf("percentage 101 error = %v, want *ValidationError", err)
	}
	if _, err := client.Vpp.Write("MIXECN6000", 1500, 50); !errors.As(err, &verr) {
		t.Errorf("1500 minutes error = %v, want *ValidationError", err)
	}
	if _, err := client.Vpp.Write("", 60, 50); !errors.As(err, &verr) {
		t.Errorf("missing serial error = %v, want *ValidationError", err)
	}
}

func TestVppWriteMultipleSerialization(t *testing.T) {
	var gotForm url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/vppSetNew" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = r.ParseForm()
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`{"error_code": 0, "error_msg": "", "data": 0}`))
	}))

	schedules := []VppSchedule{
		{Percentage: 95, Start: 0, End: 5 * 60},
		{Percentage: -60, Start: 5*60 + 1, End: 12 * 60},
	}
	if _, err := client.Vpp.WriteMultiple("MIXECN6000", schedules); err != nil {
		t.Fatalf("WriteMultiple() error = %v", err)
	}

	var sent []VppSchedule
	if err := json.Unmarshal([]byte(gotForm.Get("timePeriods")), &sent); err != nil {
		t.Fatalf("timePeriods is not JSON: %v", err)
	}
	if len(sent) != 2 || sent[0].Percentage != 95 || sent[1].End != 12*60 {
		t.Errorf("timePeriods = %+v", sent)
	}
}

func TestVppWriteMultipleValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid schedules must not reach the server")
	}))

	var verr *ValidationError
	bad := [][]VppSchedule{
		nil,
		{{Percentage: 120, Start: 0, End: 60}},
		{{Percentage: 50, Start: 60, End: 60}},
		{{Percentage: 50, Start: 120, End: 60}},
	}
	for i, schedules := range bad {
		if _, err := client.Vpp.WriteMultiple("MIXECN6000", schedules); !errors.As(err, &verr) {
			t.Errorf("case %d: error = %v, want *ValidationError", i, err)
		}
	}
}
