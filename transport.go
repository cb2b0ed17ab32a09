package growatt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// session performs signed HTTP calls against the Growatt OpenAPI.
//
// Two endpoint generations share one host: v1 endpoints live under the /v1
// path prefix and take query or form-encoded parameters, v4 ("new-api")
// endpoints live under /v4 and are POSTs addressed entirely by query
// parameters. Both authenticate with a token header. The inconsistent
// success conventions (error_code == 0 on v1, result == 1 or code == 0 on
// v4) are normalized here so submodules only ever see a raw payload or a
// typed error.
type session struct {
	apiURL string // serverURL + "/v1"
	v4URL  string // serverURL + "/v4"
	token  string
	http   *http.Client
	log    logrus.FieldLogger
	cache  *memoCache
}

func newSession(serverURL, token string, log logrus.FieldLogger) *session {
	base := strings.TrimRight(serverURL, "/")
	return &session{
		apiURL: base + "/v1",
		v4URL:  base + "/v4",
		token:  token,
		http:   &http.Client{Timeout: 10 * time.Second},
		log:    log,
		cache:  newMemoCache(defaultCacheTTL),
	}
}

// envelope is the superset of the vendor's response wrappers. v1 endpoints
// report error_code/error_msg, the device-type lookup and all v4 endpoints
// report result or code instead. Payload location also varies: most wrap it
// in "data", a few return it at the top level, so the full body is kept.
type envelope struct {
	ErrorCode *int    `json:"error_code"`
	ErrorMsg  *string `json:"error_msg"`
	Result    *int    `json:"result"`
	Code      *int    `json:"code"`
	Msg       *string `json:"msg"`
	Message   *string `json:"message"`
}

func (e *envelope) failure() (code int, msg string, failed bool) {
	if e.ErrorCode != nil && *e.ErrorCode != 0 {
		code = *e.ErrorCode
		if e.ErrorMsg != nil {
			msg = *e.ErrorMsg
		}
		return code, msg, true
	}
	if e.Result != nil && *e.Result != 1 {
		code = *e.Result
		if e.Msg != nil {
			msg = *e.Msg
		}
		return code, msg, true
	}
	if e.Code != nil && *e.Code != 0 {
		code = *e.Code
		if e.Message != nil {
			msg = *e.Message
		}
		return code, msg, true
	}
	return 0, "", false
}

// getV1 performs a GET request with query parameters.
func (s *session) getV1(endpoint string, params url.Values) (json.RawMessage, error) {
	u := s.apiURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return s.do(endpoint, req)
}

// postV1 performs a POST request with a form-encoded body, the v1 convention
// for write endpoints.
func (s *session) postV1(endpoint string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequest(http.MethodPost, s.apiURL+"/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(endpoint, req)
}

// postV4 performs a POST request addressed by query parameters, the v4
// ("new-api") convention.
func (s *session) postV4(endpoint string, params url.Values) (json.RawMessage, error) {
	u := s.v4URL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodPost, u, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return s.do(endpoint, req)
}

// postV4Into bundles postV4 with the strict decode: the v4 wrapper is a
// fixed three-field envelope, so unknown fields there mean contract drift.
func (s *session) postV4Into(op, endpoint string, params url.Values, out any) error {
	body, err := s.postV4(endpoint, params)
	if err != nil {
		return err
	}
	return decodeStrict(op, body, out)
}

// getV1Cached memoizes getV1 for endpoints the vendor rate-limits to one
// request per 5 minutes. Error responses are never stored.
func (s *session) getV1Cached(endpoint string, params url.Values) (json.RawMessage, error) {
	key := cacheKey(endpoint, params)
	if body, ok := s.cache.get(key); ok {
		return body, nil
	}
	body, err := s.getV1(endpoint, params)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, body)
	return body, nil
}

// postV1Cached is getV1Cached for rate-limited read endpoints that the
// vendor exposes as POST.
func (s *session) postV1Cached(endpoint string, form url.Values) (json.RawMessage, error) {
	key := cacheKey(endpoint, form)
	if body, ok := s.cache.get(key); ok {
		return body, nil
	}
	body, err := s.postV1(endpoint, form)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, body)
	return body, nil
}

func (s *session) do(endpoint string, req *http.Request) (json.RawMessage, error) {
	if s.token == "" {
		return nil, &ValidationError{Op: endpoint, Reason: "no API token configured"}
	}
	req.Header.Set("token", s.token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode JSON response: %w", err)}
	}
	if code, msg, failed := env.failure(); failed {
		verr := &VendorError{Endpoint: endpoint, Code: code, Message: msg, Hint: genericErrorHints[code]}
		s.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"code":     code,
		}).Warn(verr.Error())
		return nil, verr
	}
	return body, nil
}

// getInto / postInto bundle the call-decode pattern of the v1 read
// endpoints. cached routes through the memo table for the endpoints the
// vendor rate-limits to one request per 5 minutes. Both decode leniently:
// the wide telemetry payloads (details, energy, history) carry far more
// fields than the documented subsets mapped here, so unknown fields are
// expected rather than an error. Ops whose payloads are mapped in full use
// the Strict variants instead.
func (s *session) getInto(op, endpoint string, params url.Values, cached bool, out any) error {
	body, err := s.getV1Body(endpoint, params, cached)
	if err != nil {
		return err
	}
	return decodePartial(op, body, out)
}

func (s *session) postInto(op, endpoint string, form url.Values, cached bool, out any) error {
	body, err := s.postV1Body(endpoint, form, cached)
	if err != nil {
		return err
	}
	return decodePartial(op, body, out)
}

func (s *session) getIntoStrict(op, endpoint string, params url.Values, cached bool, out any) error {
	body, err := s.getV1Body(endpoint, params, cached)
	if err != nil {
		return err
	}
	return decodeStrict(op, body, out)
}

func (s *session) postIntoStrict(op, endpoint string, form url.Values, cached bool, out any) error {
	body, err := s.postV1Body(endpoint, form, cached)
	if err != nil {
		return err
	}
	return decodeStrict(op, body, out)
}

func (s *session) getV1Body(endpoint string, params url.Values, cached bool) (json.RawMessage, error) {
	if cached {
		return s.getV1Cached(endpoint, params)
	}
	return s.getV1(endpoint, params)
}

func (s *session) postV1Body(endpoint string, form url.Values, cached bool) (json.RawMessage, error) {
	if cached {
		return s.postV1Cached(endpoint, form)
	}
	return s.postV1(endpoint, form)
}

// decodeStrict unmarshals a vendor response while rejecting fields absent
// from the documented schema. Reserved for payloads whose documented field
// set is mapped completely, where an unknown field means contract drift.
func decodeStrict(op string, body json.RawMessage, target any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return &ValidationError{Op: op, Reason: "response does not match documented schema", Err: err}
	}
	return nil
}

// decodePartial unmarshals a vendor response while tolerating unknown
// fields, for the wide telemetry payloads that are mapped as documented
// subsets. Type mismatches on mapped fields still fail.
func decodePartial(op string, body json.RawMessage, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return &ValidationError{Op: op, Reason: "response does not match documented schema", Err: err}
	}
	return nil
}

// requireField enforces presence of an identity field the documented
// response guarantees, catching shape drift that lenient decoding would
// otherwise let through as zero values.
func requireField(op, field, value string) error {
	if value == "" {
		return &ValidationError{Op: op, Reason: fmt.Sprintf("response missing required field %q", field)}
	}
	return nil
}
