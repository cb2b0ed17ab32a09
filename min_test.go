package growatt

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestMinSettingWriteSerialization(t *testing.T) {
	var gotForm url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tlxSet" {
			t.Errorf("path = %s, want /v1/tlxSet", r.URL.Path)
		}
		_ = r.ParseForm()
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`{"data": "", "error_code": 0, "error_msg": ""}`))
	}))

	if _, err := client.Min.SettingWrite("BZP0000000", "charge_power", "100"); err != nil {
		t.Fatalf("SettingWrite() error = %v", err)
	}
	if gotForm.Get("tlx_sn") != "BZP0000000" || gotForm.Get("type") != "charge_power" {
		t.Errorf("identity fields = %v", gotForm)
	}
	if gotForm.Get("param1") != "100" {
		t.Errorf("param1 = %q, want 100", gotForm.Get("param1"))
	}
	for i := 2; i <= 19; i++ {
		if v, ok := gotForm[paramKey(i)]; !ok || v[0] != "" {
			t.Errorf("%s = %v, want present and empty", paramKey(i), v)
		}
	}
}

func TestMinEnergyHistoryBeyondRetentionHorizon(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("tlx_sn") != "BZP0000000" {
			t.Errorf("tlx_sn = %q", r.PostForm.Get("tlx_sn"))
		}
		_, _ = w.Write([]byte(`{"data": {"count": 0, "tlx_sn": "BZP0000000", "datas": []}, "error_code": 0, "error_msg": ""}`))
	}))

	// window far behind the vendor's ~95-day retention: empty result, no
	// error
	end := time.Now().AddDate(0, 0, -120)
	start := end.AddDate(0, 0, -3)
	hist, err := client.Min.EnergyHistory("BZP0000000", DateRange{Start: start, End: end}, "", Pagination{})
	if err != nil {
		t.Fatalf("EnergyHistory() error = %v", err)
	}
	if hist.Data.Count != 0 || len(hist.Data.Datas) != 0 {
		t.Errorf("history = %+v, want empty", hist.Data)
	}
}

func TestMinEnergyHistoryRejectsLongWindow(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 8)
	_, err := client.Min.EnergyHistory("BZP0000000", DateRange{Start: start, End: end}, "", Pagination{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (validated before I/O)", requests)
	}
}

func TestMinDetailsDecodesDocumentedPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/device/tlx/tlx_data_info" {
			t.Errorf("path = %s", r.URL.Path)
		}
		// the vendor's actual key spelling: addr, dataLogSn, bagingTestStep,
		// optimezerList, plantname, trakerModel; plus fields beyond the
		// mapped set, which lenient decoding ignores
		_, _ = w.Write([]byte(`{
			"data": {
				"addr": 1,
				"alias": "FDCJQ00003",
				"bagingTestStep": 2,
				"batSysEnergy": 0,
				"bdcAuthversion": 0,
				"children": [],
				"dataLogSn": "VC51030322020001",
				"deviceType": 5,
				"dtc": 5203,
				"lastUpdateTime": {"date": 12, "day": 2, "hours": 16, "minutes": 46, "month": 3, "seconds": 22, "time": 1649753182000, "timezoneOffset": -480, "year": 122},
				"lastUpdateTimeText": "2022-04-12 16:46:22",
				"model": 2666130979655057522,
				"modelText": "S25B00D00T00P0FU01M0072",
				"optimezerList": [],
				"plantname": "",
				"pmax": 11400,
				"powerMax": "",
				"serialNum": "FDCJQ00003",
				"status": 1,
				"statusText": "tlx.status.operating",
				"tlxSetbean": {"acChargeEnable": 1},
				"trakerModel": 0,
				"treeID": "ST_FDCJQ00003",
				"wselectBaudrate": 0,
				"batAgingTestStep": 0,
				"someFutureVendorField": "x"
			},
			"datalogger_sn": "VC51030322020001",
			"device_sn": "FDCJQ00003",
			"error_code": 0,
			"error_msg": ""
		}`))
	}))

	details, err := client.Min.Details("FDCJQ00003")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	d := details.Data
	if d.Address != 1 || d.BatAgingTestStep != 2 || d.DataloggerSN != "VC51030322020001" {
		t.Errorf("decoded details = %+v", d)
	}
	if d.Model != 2666130979655057522 {
		t.Errorf("Model = %d", d.Model)
	}
	if d.LastUpdateTime.Time != 1649753182000 {
		t.Errorf("LastUpdateTime.Time = %d", d.LastUpdateTime.Time)
	}
	if d.TreeID != "ST_FDCJQ00003" || d.TrackerModel != 0 {
		t.Errorf("TreeID = %q, TrackerModel = %d", d.TreeID, d.TrackerModel)
	}
}

func TestMinDetailsMissingSerialRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"alias": "FDCJQ00003"}, "error_code": 0, "error_msg": ""}`))
	}))

	_, err := client.Min.Details("FDCJQ00003")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestMinAlarmsFamilySerialKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/device/tlx/alarm_data" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("tlx_sn") != "FDCJQ00003" {
			t.Errorf("tlx_sn = %q", r.PostForm.Get("tlx_sn"))
		}
		_, _ = w.Write([]byte(`{
			"data": {
				"count": 1,
				"tlx_sn": "FDCJQ00003",
				"alarms": [
					{"alarm_code": 2, "status": 1, "start_time": "2019-03-09 09:55:55.0", "end_time": "2019-03-09 09:55:55.0", "alarm_message": "undown error"}
				]
			},
			"error_code": 0,
			"error_msg": ""
		}`))
	}))

	alarms, err := client.Min.Alarms("FDCJQ00003", time.Date(2019, 3, 9, 0, 0, 0, 0, time.UTC), Pagination{})
	if err != nil {
		t.Fatalf("Alarms() error = %v", err)
	}
	if alarms.Data.DeviceSN != "FDCJQ00003" {
		t.Errorf("DeviceSN = %q, want serial from tlx_sn key", alarms.Data.DeviceSN)
	}
	if alarms.Data.Count != 1 || len(alarms.Data.Alarms) != 1 || alarms.Data.Alarms[0].AlarmCode != 2 {
		t.Errorf("alarms = %+v", alarms.Data)
	}
}

func TestMinSettings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/device/tlx/tlx_set_info" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"data": {"onOff": 1, "activePowerRate": 100, "exportLimit": 0, "sysTime": "2026-08-25 12:00:00"},
			"device_sn": "BZP0000000",
			"error_code": 0,
			"error_msg": ""
		}`))
	}))

	settings, err := client.Min.Settings("BZP0000000")
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if settings.Data.OnOff != 1 || settings.Data.ActivePowerRate != 100 {
		t.Errorf("settings = %+v", settings.Data)
	}
}
