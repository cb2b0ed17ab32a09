package growatt

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// V4Service covers the "new-api" endpoint generation. It addresses devices
// by serial plus family name (inv, storage, sph, max, spa, min, wit, sph-s,
// noah) and is the only surface for the WIT, SPH-S and NOAH families.
//
// The per-family payloads of the query endpoints carry well over a hundred
// vendor fields each and are keyed by family name, so they are surfaced as
// raw JSON rows rather than typed structs.
type V4Service struct {
	s *session
}

// v4SNs joins serials for the batch-capable query endpoints.
func v4SNs(op string, deviceSNs []string) (string, error) {
	if len(deviceSNs) == 0 {
		return "", &ValidationError{Op: op, Reason: "device serial number required"}
	}
	if len(deviceSNs) > 100 {
		return "", &ValidationError{Op: op, Reason: "max 100 devices per request"}
	}
	return strings.Join(deviceSNs, ","), nil
}

// V4Device is one entry of the new-api/queryDeviceList response.
type V4Device struct {
	CreateDate   string `json:"createDate"`
	DataloggerSN string `json:"datalogSn"`
	DeviceSN     string `json:"deviceSn"`
	DeviceType   string `json:"deviceType"`
}

// V4DeviceList is the new-api/queryDeviceList response payload. Only the
// devices on this list are permitted to fetch data through the v4
// endpoints.
type V4DeviceList struct {
	Code int `json:"code"`
	Data struct {
		Count      int        `json:"count"`
		Data       []V4Device `json:"data"`
		LastPager  bool       `json:"lastPager"`
		NotPager   bool       `json:"notPager"`
		Other      any        `json:"other"`
		PageSize   int        `json:"pageSize"`
		Pages      int        `json:"pages"`
		StartCount int        `json:"startCount"`
	} `json:"data"`
	Message string `json:"message"`
}

// List returns the devices visible to the account token, 100 per page.
func (v *V4Service) List(page int) (*V4DeviceList, error) {
	params := url.Values{}
	setOptInt(params, "page", page)
	out := new(V4DeviceList)
	if err := v.s.postV4Into("v4.list", "new-api/queryDeviceList", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// V4Details is the new-api/queryDeviceInfo response payload: raw device
// rows keyed by family name.
type V4Details struct {
	Code    int                          `json:"code"`
	Data    map[string][]json.RawMessage `json:"data"`
	Message string                       `json:"message"`
}

// Devices flattens the per-family map into one row list.
func (d *V4Details) Devices() []json.RawMessage {
	var rows []json.RawMessage
	for _, v := range d.Data {
		rows = append(rows, v...)
	}
	return rows
}

// Details returns the basic information of up to 100 devices of one
// family.
func (v *V4Service) Details(deviceType DeviceType, deviceSNs ...string) (*V4Details, error) {
	sns, err := v4SNs("v4.details", deviceSNs)
	if err != nil {
		return nil, err
	}
	params := url.Values{
		"deviceSn":   {sns},
		"deviceType": {string(deviceType)},
	}
	out := new(V4Details)
	if err := v.s.postV4Into("v4.details", "new-api/queryDeviceInfo", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// V4Energy is the new-api/queryLastData response payload: raw telemetry
// rows keyed by family name.
type V4Energy struct {
	Code    int                          `json:"code"`
	Data    map[string][]json.RawMessage `json:"data"`
	Message string                       `json:"message"`
}

// Energy returns the latest telemetry of up to 100 devices of one family.
func (v *V4Service) Energy(deviceType DeviceType, deviceSNs ...string) (*V4Energy, error) {
	sns, err := v4SNs("v4.energy", deviceSNs)
	if err != nil {
		return nil, err
	}
	params := url.Values{
		"deviceSn":   {sns},
		"deviceType": {string(deviceType)},
	}
	out := new(V4Energy)
	if err := v.s.postV4Into("v4.energy", "new-api/queryLastData", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// V4EnergyHistory is the new-api/queryHistoricalData response payload.
type V4EnergyHistory struct {
	Code    int                          `json:"code"`
	Data    map[string][]json.RawMessage `json:"data"`
	Message string                       `json:"message"`
}

// EnergyHistory returns one day of telemetry of one device (defaults to
// today).
func (v *V4Service) EnergyHistory(deviceType DeviceType, deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "v4.energy_history", Reason: "device serial number required"}
	}
	if day.IsZero() {
		day = time.Now()
	}
	params := url.Values{
		"deviceSn":   {deviceSN},
		"deviceType": {string(deviceType)},
		"date":       {day.Format(dateFormat)},
	}
	out := new(V4EnergyHistory)
	if err := v.s.postV4Into("v4.energy_history", "new-api/queryHistoricalData", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyHistoryMultiple returns one day of telemetry of up to 100 devices
// of one family.
func (v *V4Service) EnergyHistoryMultiple(deviceType DeviceType, day time.Time, deviceSNs ...string) (*V4EnergyHistory, error) {
	sns, err := v4SNs("v4.energy_history_multiple", deviceSNs)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	params := url.Values{
		"deviceSn":   {sns},
		"deviceType": {string(deviceType)},
		"date":       {day.Format(dateFormat)},
	}
	out := new(V4EnergyHistory)
	if err := v.s.postV4Into("v4.energy_history_multiple", "new-api/queryDevicesHistoricalData", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// V4SettingResponse is the shared payload of the v4 setting endpoints.
type V4SettingResponse struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (v *V4Service) writeSetting(op, endpoint string, deviceType DeviceType, deviceSN string, extra url.Values) (*V4SettingResponse, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: op, Reason: "device serial number required"}
	}
	params := url.Values{
		"deviceSn":   {deviceSN},
		"deviceType": {string(deviceType)},
	}
	for k, vs := range extra {
		params[k] = vs
	}
	out := new(V4SettingResponse)
	if err := v.s.postV4Into(op, endpoint, params, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWriteOnOff powers one device on or off.
func (v *V4Service) SettingWriteOnOff(deviceType DeviceType, deviceSN string, powerOn bool) (*V4SettingResponse, error) {
	onOff := "0"
	if powerOn {
		onOff = "1"
	}
	return v.writeSetting("v4.setting_write_on_off", "new-api/setOnOrOff", deviceType, deviceSN,
		url.Values{"onOff": {onOff}})
}

// SettingWriteActivePower sets the active power output limit as a
// percentage of nominal power (0-100).
func (v *V4Service) SettingWriteActivePower(deviceType DeviceType, deviceSN string, percent int) (*V4SettingResponse, error) {
	if percent < 0 || percent > 100 {
		return nil, &ValidationError{Op: "v4.setting_write_active_power", Reason: "percentage must be between 0 and 100"}
	}
	return v.writeSetting("v4.setting_write_active_power", "new-api/setActivePower", deviceType, deviceSN,
		url.Values{"activePower": {strconv.Itoa(percent)}})
}

// SettingWriteSocUpperLimit sets the charge stop SOC (0-100).
func (v *V4Service) SettingWriteSocUpperLimit(deviceType DeviceType, deviceSN string, percent int) (*V4SettingResponse, error) {
	if percent < 0 || percent > 100 {
		return nil, &ValidationError{Op: "v4.setting_write_soc_upper_limit", Reason: "SOC limit must be between 0 and 100"}
	}
	return v.writeSetting("v4.setting_write_soc_upper_limit", "new-api/setSocUpperLimit", deviceType, deviceSN,
		url.Values{"socLimit": {strconv.Itoa(percent)}})
}

// SettingWriteSocLowerLimit sets the discharge stop SOC (0-100).
func (v *V4Service) SettingWriteSocLowerLimit(deviceType DeviceType, deviceSN string, percent int) (*V4SettingResponse, error) {
	if percent < 0 || percent > 100 {
		return nil, &ValidationError{Op: "v4.setting_write_soc_lower_limit", Reason: "SOC limit must be between 0 and 100"}
	}
	return v.writeSetting("v4.setting_write_soc_lower_limit", "new-api/setSocLowerLimit", deviceType, deviceSN,
		url.Values{"socLimit": {strconv.Itoa(percent)}})
}

// V4TimePeriod is one output schedule slot of the time period setting:
// slot number 1-9, start/end as minutes since midnight. LoadPriority false
// means battery priority. PowerWatt is the slot's output power; the NOAH
// balcony storage caps it at 800 W, other families take their own ranges
// which the vendor validates server-side.
type V4TimePeriod struct {
	Number       int
	Start        int
	End          int
	LoadPriority bool
	PowerWatt    int
	Enabled      bool
}

// SettingWriteTimePeriod programs one output schedule slot.
func (v *V4Service) SettingWriteTimePeriod(deviceType DeviceType, deviceSN string, tp V4TimePeriod) (*V4SettingResponse, error) {
	const op = "v4.setting_write_time_period"
	if tp.Number < 1 || tp.Number > 9 {
		return nil, &ValidationError{Op: op, Reason: "time period number must be between 1 and 9"}
	}
	if tp.Start < 0 || tp.End > 24*60 || tp.End <= tp.Start {
		return nil, &ValidationError{Op: op, Reason: "end time must be after start time and within one day"}
	}
	if tp.PowerWatt < 0 {
		return nil, &ValidationError{Op: op, Reason: "output power must not be negative"}
	}
	if deviceType == DeviceTypeNoah && tp.PowerWatt > 800 {
		return nil, &ValidationError{Op: op, Reason: "output power must be between 0 and 800 watts"}
	}
	boolParam := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	extra := url.Values{
		"timePeriodNum": {strconv.Itoa(tp.Number)},
		"startTime":     {fmt.Sprintf("%02d:%02d", tp.Start/60, tp.Start%60)},
		"endTime":       {fmt.Sprintf("%02d:%02d", tp.End/60, tp.End%60)},
		"mode":          {boolParam(tp.LoadPriority)},
		"power":         {strconv.Itoa(tp.PowerWatt)},
		"enable":        {boolParam(tp.Enabled)},
	}
	return v.writeSetting(op, "new-api/setTimePeriod", deviceType, deviceSN, extra)
}

// SettingReadVppParam reads one VPP parameter (set_param_1 ...) from one
// device.
func (v *V4Service) SettingReadVppParam(deviceType DeviceType, deviceSN, paramID string) (*V4SettingResponse, error) {
	const op = "v4.setting_read_vpp_param"
	if paramID == "" {
		return nil, &ValidationError{Op: op, Reason: "parameter ID required"}
	}
	return v.writeSetting(op, "new-api/readVppParameter", deviceType, deviceSN,
		url.Values{"setType": {paramID}})
}

// SettingWriteVppParam writes one VPP parameter on one device.
func (v *V4Service) SettingWriteVppParam(deviceType DeviceType, deviceSN, paramID, value string) (*V4SettingResponse, error) {
	const op = "v4.setting_write_vpp_param"
	if paramID == "" {
		return nil, &ValidationError{Op: op, Reason: "parameter ID required"}
	}
	return v.writeSetting(op, "new-api/setVppParameter", deviceType, deviceSN,
		url.Values{"setType": {paramID}, "setValue": {value}})
}
