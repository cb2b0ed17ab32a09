package growatt

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func TestV4ListParsesDevices(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"code": 0,
			"data": {
				"count": 2,
				"data": [
					{"createDate": "2024-11-30 17:37:26", "datalogSn": "QMN000BZP0000000", "deviceSn": "BZP0000000", "deviceType": "min"},
					{"createDate": "2021-06-29 12:02:46", "datalogSn": null, "deviceSn": "HPJ0BF20FU", "deviceType": "max"}
				],
				"lastPager": true,
				"notPager": false,
				"other": null,
				"pageSize": 100,
				"pages": 1,
				"startCount": 0
			},
			"message": "SUCCESSFUL_OPERATION"
		}`))
	}))

	list, err := client.V4.List(0)
	if err != nil {
		t.Fatalf("V4.List() error = %v", err)
	}
	if list.Data.Count != 2 || len(list.Data.Data) != 2 {
		t.Fatalf("list = %+v", list.Data)
	}
	family, ok := DeviceTypeFromV4List(list.Data.Data[0].DeviceType)
	if !ok || family != DeviceTypeMin {
		t.Errorf("first device family = %s, want min", family)
	}
}

func TestV4EnvelopeFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": 7, "data": null, "message": "DEVICE_NOT_EXIST"}`))
	}))

	_, err := client.V4.Details(DeviceTypeMin, "NOPE")
	var verr *VendorError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *VendorError", err)
	}
	if verr.Code != 7 || verr.Message != "DEVICE_NOT_EXIST" {
		t.Errorf("vendor error = %+v", verr)
	}
}

func TestV4SettingWriteOnOff(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"code": 0, "data": null, "message": "PARAMETER_SETTING_SUCCESSFUL"}`))
	}))

	resp, err := client.Wit.SettingWriteOnOff("WIT0000001", true)
	if err != nil {
		t.Fatalf("SettingWriteOnOff() error = %v", err)
	}
	if resp.Message != "PARAMETER_SETTING_SUCCESSFUL" {
		t.Errorf("Message = %q", resp.Message)
	}
	if gotQuery.Get("deviceSn") != "WIT0000001" || gotQuery.Get("deviceType") != "wit" || gotQuery.Get("onOff") != "1" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestV4TimePeriodValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid time periods must not reach the server")
	}))

	cases := []V4TimePeriod{
		{Number: 0, Start: 0, End: 60, PowerWatt: 100},
		{Number: 10, Start: 0, End: 60, PowerWatt: 100},
		{Number: 1, Start: 120, End: 60, PowerWatt: 100},
		{Number: 1, Start: 0, End: 25 * 60, PowerWatt: 100},
		{Number: 1, Start: 0, End: 60, PowerWatt: 900},
	}
	for i, tp := range cases {
		_, err := client.Noah.SettingWriteTimePeriod("NOAH000001", tp)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("case %d: error = %v, want *ValidationError", i, err)
		}
	}
}

func TestV4TimePeriodPowerLimitPerFamily(t *testing.T) {
	served := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		_, _ = w.Write([]byte(`{"code": 0, "data": null, "message": "PARAMETER_SETTING_SUCCESSFUL"}`))
	}))

	// the 800 W cap is NOAH's; a WIT slot above it goes through to the
	// vendor, which validates family-specific ranges itself
	tp := V4TimePeriod{Number: 1, Start: 0, End: 60, PowerWatt: 5000, Enabled: true}
	if _, err := client.V4.SettingWriteTimePeriod(DeviceTypeWit, "WIT0000001", tp); err != nil {
		t.Fatalf("WIT SettingWriteTimePeriod() error = %v", err)
	}
	if served != 1 {
		t.Errorf("served = %d, want 1", served)
	}

	var verr *ValidationError
	if _, err := client.Noah.SettingWriteTimePeriod("NOAH000001", tp); !errors.As(err, &verr) {
		t.Errorf("NOAH over-limit error = %v, want *ValidationError", err)
	}
	tp.PowerWatt = -1
	if _, err := client.V4.SettingWriteTimePeriod(DeviceTypeWit, "WIT0000001", tp); !errors.As(err, &verr) {
		t.Errorf("negative power error = %v, want *ValidationError", err)
	}
}

func TestV4TimePeriodSerialization(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"code": 0, "data": null, "message": "PARAMETER_SETTING_SUCCESSFUL"}`))
	}))

	tp := V4TimePeriod{Number: 3, Start: 6*60 + 30, End: 12 * 60, LoadPriority: true, PowerWatt: 400, Enabled: true}
	if _, err := client.Noah.SettingWriteTimePeriod("NOAH000001", tp); err != nil {
		t.Fatalf("SettingWriteTimePeriod() error = %v", err)
	}
	if gotQuery.Get("timePeriodNum") != "3" || gotQuery.Get("startTime") != "06:30" || gotQuery.Get("endTime") != "12:00" {
		t.Errorf("schedule query = %v", gotQuery)
	}
	if gotQuery.Get("mode") != "1" || gotQuery.Get("power") != "400" || gotQuery.Get("enable") != "1" {
		t.Errorf("mode/power/enable query = %v", gotQuery)
	}
}

func TestV4DetailsBatchLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized batch must not reach the server")
	}))

	sns := make([]string, 101)
	for i := range sns {
		sns[i] = "SN"
	}
	_, err := client.V4.Details(DeviceTypeMin, sns...)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}
