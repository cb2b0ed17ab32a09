package growatt

import "net/url"

// DataloggerService covers datalogger endpoints: serial validation and the
// discovery listings for the smart meters and environmental sensors
// attached to one collector.
type DataloggerService struct {
	s *session
}

// DataloggerValidation is the device/datalogger/validate response payload.
// PlantID and UserID identify the existing registration when the collector
// is already claimed.
type DataloggerValidation struct {
	Data struct {
		DataloggerSN string `json:"dataloggerSn"`
		PlantID      int    `json:"plantId"`
		UserID       int    `json:"userId"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Validate checks a datalogger serial against its validation code (printed
// on the device label).
func (d *DataloggerService) Validate(dataloggerSN, validationCode string) (*DataloggerValidation, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "datalogger.validate", Reason: "datalogger serial number required"}
	}
	form := url.Values{
		"datalogSn": {dataloggerSN},
		"valiCode":  {validationCode},
	}
	body, err := d.s.postV1("device/datalogger/validate", form)
	if err != nil {
		return nil, err
	}
	out := new(DataloggerValidation)
	if err := decodeStrict("datalogger.validate", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttachedDevice is one meter or sensor behind a datalogger. Address is the
// bus address used by the per-device read endpoints. DeviceType codes:
// 48 environmental tester; 64 smart meter, 66/67 SDM one/three-way,
// 70/71 CHNT one/three-way.
type AttachedDevice struct {
	Address        int    `json:"address"`
	DataloggerSN   string `json:"datalogger_sn"`
	DeviceName     string `json:"device_name"`
	DeviceType     string `json:"device_type"`
	LastUpdateTime string `json:"last_update_time"`
	Lost           bool   `json:"lost"`
}

// EnvSensorList is the device/env/env_list response payload.
type EnvSensorList struct {
	Data struct {
		Count        int              `json:"count"`
		DataloggerSN string           `json:"datalogger_sn"`
		Envs         []AttachedDevice `json:"envs"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// ListEnvSensors returns the environmental sensors behind a datalogger.
func (d *DataloggerService) ListEnvSensors(dataloggerSN string, page Pagination) (*EnvSensorList, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "datalogger.list_env_sensors", Reason: "datalogger serial number required"}
	}
	params := url.Values{"datalog_sn": {dataloggerSN}}
	page.apply(params)
	body, err := d.s.getV1Cached("device/env/env_list", params)
	if err != nil {
		return nil, err
	}
	out := new(EnvSensorList)
	if err := decodePartial("datalogger.list_env_sensors", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SmartMeterList is the device/ammeter/meter_list response payload.
type SmartMeterList struct {
	Data struct {
		Count        int              `json:"count"`
		DataloggerSN string           `json:"datalogger_sn"`
		Meters       []AttachedDevice `json:"meters"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// ListSmartMeters returns the smart meters behind a datalogger.
func (d *DataloggerService) ListSmartMeters(dataloggerSN string, page Pagination) (*SmartMeterList, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "datalogger.list_smart_meters", Reason: "datalogger serial number required"}
	}
	params := url.Values{"datalog_sn": {dataloggerSN}}
	page.apply(params)
	body, err := d.s.getV1Cached("device/ammeter/meter_list", params)
	if err != nil {
		return nil, err
	}
	out := new(SmartMeterList)
	if err := decodePartial("datalogger.list_smart_meters", body, out); err != nil {
		return nil, err
	}
	return out, nil
}
