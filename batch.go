package growatt

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// EnergyMultiple is the batched last-data result of the inverter, min, max,
// sph and spa families. The vendor double-keys each row by its serial and
// the rows carry the full family telemetry, so they are surfaced raw;
// unmarshal a row into the family's energy type when typed access is needed.
type EnergyMultiple struct {
	Serials []string
	Rows    map[string]json.RawMessage
	PageNum int
}

// energyMultipleEnvelope covers the serial-list keys the three batch
// endpoints use; only the requesting family's key is ever populated.
type energyMultipleEnvelope struct {
	Data      map[string]map[string]json.RawMessage `json:"data"`
	Inverters []string                              `json:"inverters"`
	Tlxs      []string                              `json:"tlxs"`
	Mixs      []string                              `json:"mixs"`
	PageNum   int                                   `json:"page_num"`
	ErrorCode int                                   `json:"error_code"`
	ErrorMsg  string                                `json:"error_msg"`
}

// energyMultiple posts a batched last-data request: comma-joined serials
// under the family's list key, at most 100 per call, paged (the vendor
// serves at most two pages).
func (s *session) energyMultiple(op, endpoint, listKey string, deviceSNs []string, page int) (*EnergyMultiple, error) {
	if len(deviceSNs) == 0 {
		return nil, &ValidationError{Op: op, Reason: "device serial number required"}
	}
	if len(deviceSNs) > 100 {
		return nil, &ValidationError{Op: op, Reason: "max 100 devices per request"}
	}
	if page == 0 {
		page = 1
	}
	form := url.Values{
		listKey:   {strings.Join(deviceSNs, ",")},
		"pageNum": {strconv.Itoa(page)},
	}
	env := new(energyMultipleEnvelope)
	if err := s.postInto(op, endpoint, form, true, env); err != nil {
		return nil, err
	}
	out := &EnergyMultiple{
		Rows:    make(map[string]json.RawMessage, len(env.Data)),
		PageNum: env.PageNum,
	}
	for _, serials := range [][]string{env.Inverters, env.Tlxs, env.Mixs} {
		if len(serials) > 0 {
			out.Serials = serials
		}
	}
	for sn, inner := range env.Data {
		if row, ok := inner[sn]; ok {
			out.Rows[sn] = row
		}
	}
	return out, nil
}
