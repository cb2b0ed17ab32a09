package growatt

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DeviceService covers the cross-family device endpoints: per-plant device
// listing, type lookup by serial, day energy and datalogger resolution.
type DeviceService struct {
	s *session
}

// Device is one entry of the per-plant device list. Type is the numeric
// family code of that listing (see DeviceTypeFromDeviceList); it is the
// authoritative source for dispatch, not the model name.
type Device struct {
	DeviceSN       string `json:"device_sn"`
	DeviceID       int    `json:"device_id"`
	DataloggerSN   string `json:"datalogger_sn"`
	Type           int    `json:"type"`
	Model          string `json:"model"`
	Manufacturer   string `json:"manufacturer"`
	Status         int    `json:"status"`
	Lost           bool   `json:"lost"`
	LastUpdateTime string `json:"last_update_time"`
}

// DeviceList is the device/list response payload.
type DeviceList struct {
	Data struct {
		Count   int      `json:"count"`
		Devices []Device `json:"devices"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// List returns the devices attached to one plant.
func (d *DeviceService) List(plantID int, page Pagination) (*DeviceList, error) {
	params := url.Values{"plant_id": {strconv.Itoa(plantID)}}
	page.apply(params)
	body, err := d.s.getV1Cached("device/list", params)
	if err != nil {
		return nil, err
	}
	out := new(DeviceList)
	if err := decodeStrict("device.list", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeviceTypeInfo is the device/check/sn response. DeviceType is the numeric
// family code (see DeviceTypeFromTypeInfo); Obj is the coarse class
// (1=inverter, 2=storage, 3=datalogger, 4=other). This envelope signals
// success with result == 1 instead of error_code.
type DeviceTypeInfo struct {
	DeviceType  int    `json:"device_type"`
	Dtc         int    `json:"dtc"`
	HaveMeter   bool   `json:"have_meter"`
	InSystem    bool   `json:"in_system"`
	Model       string `json:"model"`
	Msg         string `json:"msg"`
	NormalPower int    `json:"normal_power"`
	Obj         int    `json:"obj"`
	Result      int    `json:"result"`
}

// TypeInfo resolves the device family code of a serial number. Works for
// inverters and dataloggers alike.
func (d *DeviceService) TypeInfo(deviceSN string) (*DeviceTypeInfo, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "device.type_info", Reason: "device serial number required"}
	}
	body, err := d.s.getV1Cached("device/check/sn", url.Values{"dataloggerSn": {deviceSN}})
	if err != nil {
		return nil, err
	}
	out := new(DeviceTypeInfo)
	if err := decodeStrict("device.type_info", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeviceEnergyDay is the device/inverter/day_energy response payload.
type DeviceEnergyDay struct {
	Data         float64 `json:"data"`
	DataloggerSN string  `json:"datalogger_sn"`
	DeviceSN     string  `json:"device_sn"`
	ErrorCode    int     `json:"error_code"`
	ErrorMsg     string  `json:"error_msg"`
}

// EnergyDay returns a device's production for one day (defaults to today).
func (d *DeviceService) EnergyDay(deviceSN string, day time.Time) (*DeviceEnergyDay, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "device.energy_day", Reason: "device serial number required"}
	}
	if day.IsZero() {
		day = time.Now()
	}
	params := url.Values{
		"device_sn": {deviceSN},
		"date":      {day.Format(dateFormat)},
	}
	body, err := d.s.getV1Cached("device/inverter/day_energy", params)
	if err != nil {
		return nil, err
	}
	out := new(DeviceEnergyDay)
	if err := decodeStrict("device.energy_day", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeviceDatalogger is the device/sn_datalog response payload.
type DeviceDatalogger struct {
	Data struct {
		DatalogSN string `json:"datalogSN"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// GetDatalogger resolves the datalogger a device reports through.
func (d *DeviceService) GetDatalogger(deviceSN string) (*DeviceDatalogger, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "device.get_datalogger", Reason: "device serial number required"}
	}
	body, err := d.s.postV1("device/sn_datalog", url.Values{"device_sn": {deviceSN}})
	if err != nil {
		return nil, err
	}
	out := new(DeviceDatalogger)
	if err := decodeStrict("device.get_datalogger", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeviceCreateDate is the device/all/create_date response payload, keyed by
// device serial.
type DeviceCreateDate struct {
	Data map[string]struct {
		CreateTime     string `json:"createTime"`
		DatalogSN      string `json:"datalogSn"`
		DeviceName     string `json:"deviceName"`
		DeviceSN       string `json:"deviceSn"`
		DeviceType     string `json:"deviceType"`
		LastUpdateTime string `json:"lastUpdateTime"`
		TableName      string `json:"tableName"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// CreateDate returns creation dates for up to 100 serials in one batch.
func (d *DeviceService) CreateDate(deviceSNs []string, page int) (*DeviceCreateDate, error) {
	if len(deviceSNs) == 0 {
		return nil, &ValidationError{Op: "device.create_date", Reason: "device serial number required"}
	}
	if len(deviceSNs) > 100 {
		return nil, &ValidationError{Op: "device.create_date", Reason: "max 100 devices per request"}
	}
	if page == 0 {
		page = 1
	}
	form := url.Values{
		"pageNum": {strconv.Itoa(page)},
		"devices": {strings.Join(deviceSNs, ",")},
	}
	body, err := d.s.postV1("device/all/create_date", form)
	if err != nil {
		return nil, err
	}
	out := new(DeviceCreateDate)
	if err := decodeStrict("device.create_date", body, out); err != nil {
		return nil, err
	}
	return out, nil
}
