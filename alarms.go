package growatt

import (
	"encoding/json"
	"net/url"
)

// Alarm is one device alarm row, shared across families.
type Alarm struct {
	AlarmCode    int    `json:"alarm_code"`
	Status       int    `json:"status"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	AlarmMessage string `json:"alarm_message"`
}

// AlarmList is the shared alarm-history payload. The vendor keys the serial
// number under a family-specific name on the wire (sn, tlx_sn, max_sn,
// mix_sn, ...), so DeviceSN is filled in by name after decoding instead of
// through a struct tag.
type AlarmList struct {
	Data struct {
		DeviceSN string  `json:"-"`
		Count    int     `json:"count"`
		Alarms   []Alarm `json:"alarms"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// alarmsInto fetches and decodes one family's alarm-history endpoint.
// wireKey names the response field carrying the serial for that family.
// The inverter family serves alarms over GET, the rest over POST; both are
// rate-limited reads and go through the cache.
func (s *session) alarmsInto(op, endpoint string, form url.Values, viaGet bool, wireKey string) (*AlarmList, error) {
	var (
		body json.RawMessage
		err  error
	)
	if viaGet {
		body, err = s.getV1Cached(endpoint, form)
	} else {
		body, err = s.postV1Cached(endpoint, form)
	}
	if err != nil {
		return nil, err
	}
	out := new(AlarmList)
	if err := decodePartial(op, body, out); err != nil {
		return nil, err
	}
	out.Data.DeviceSN = alarmSerial(body, wireKey)
	return out, nil
}

func alarmSerial(body json.RawMessage, wireKey string) string {
	var aux struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &aux); err != nil {
		return ""
	}
	var sn string
	_ = json.Unmarshal(aux.Data[wireKey], &sn)
	return sn
}
