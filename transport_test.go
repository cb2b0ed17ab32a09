package growatt

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

// newTestClient wires a Client against an httptest server with a silent
// logger.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(Config{
		ServerURL: server.URL,
		Token:     "test-token",
		Logger:    log,
	})
}

const plantListBody = `{
	"data": {
		"count": 1,
		"plants": [
			{"plant_id": 1234567, "name": "Balcony", "status": 1, "country": "Germany", "city": "Berlin", "peak_power": 0.8, "current_power": "0.1", "total_energy": 12.5}
		]
	},
	"error_code": 0,
	"error_msg": ""
}`

func TestSessionSetsTokenHeader(t *testing.T) {
	var gotToken, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(plantListBody))
	}))

	plants, err := client.Plant.List(nil)
	if err != nil {
		t.Fatalf("Plant.List() error = %v", err)
	}
	if gotToken != "test-token" {
		t.Errorf("token header = %q, want %q", gotToken, "test-token")
	}
	if gotPath != "/v1/plant/list" {
		t.Errorf("path = %q, want /v1/plant/list", gotPath)
	}
	if plants.Data.Count != 1 || plants.Data.Plants[0].PlantID != 1234567 {
		t.Errorf("unexpected plant list payload: %+v", plants.Data)
	}
}

func TestPostV1SendsFormBody(t *testing.T) {
	var gotContentType, gotSN string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		gotSN = r.PostFormValue("device_sn")
		_, _ = w.Write([]byte(`{"data": {"datalogSN": "QMN000BZP0000000"}, "error_code": 0, "error_msg": ""}`))
	}))

	got, err := client.Device.GetDatalogger("BZP0000000")
	if err != nil {
		t.Fatalf("Device.GetDatalogger() error = %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want form encoding", gotContentType)
	}
	if gotSN != "BZP0000000" {
		t.Errorf("device_sn = %q, want BZP0000000", gotSN)
	}
	if got.Data.DatalogSN != "QMN000BZP0000000" {
		t.Errorf("DatalogSN = %q", got.Data.DatalogSN)
	}
}

func TestPostV4UsesQueryParams(t *testing.T) {
	var gotPath, gotPage string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`{"code": 0, "data": {"count": 0, "data": [], "lastPager": true, "notPager": false, "other": null, "pageSize": 100, "pages": 1, "startCount": 0}, "message": "SUCCESSFUL_OPERATION"}`))
	}))

	if _, err := client.V4.List(2); err != nil {
		t.Fatalf("V4.List() error = %v", err)
	}
	if gotPath != "/v4/new-api/queryDeviceList" {
		t.Errorf("path = %q, want /v4/new-api/queryDeviceList", gotPath)
	}
	if gotPage != "2" {
		t.Errorf("page = %q, want 2", gotPage)
	}
}

func TestUnexpectedStatusCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Plant.List(nil)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", terr.Status)
	}
}

func TestVendorErrorCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null, "error_code": 10011, "error_msg": "error_permission_denied"}`))
	}))

	_, err := client.Plant.List(nil)
	var verr *VendorError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *VendorError", err)
	}
	if verr.Code != 10011 {
		t.Errorf("Code = %d, want 10011", verr.Code)
	}
	if verr.Hint == "" {
		t.Error("Hint is empty, want generic hint for 10011")
	}
}

func TestResultEnvelopeFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": 0, "msg": "error_sn_empty"}`))
	}))

	_, err := client.Device.TypeInfo("XXX")
	var verr *VendorError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *VendorError", err)
	}
	if verr.Message != "error_sn_empty" {
		t.Errorf("Message = %q", verr.Message)
	}
}

func TestUndocumentedFieldRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"count": 0, "plants": [], "surprise": 1}, "error_code": 0, "error_msg": ""}`))
	}))

	_, err := client.Plant.List(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestMissingTokenRejectedBeforeIO(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	client := New(Config{ServerURL: server.URL, Logger: log})

	_, err := client.Plant.List(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}
