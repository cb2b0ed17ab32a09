package growatt

import (
	"net/url"
	"time"
)

// MaxService covers the MAX family (device list type 4, type-info code 18),
// the vendor's large commercial string inverters. Settings and history are
// shared with the tlx endpoint group.
type MaxService struct {
	s     *session
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (m *MaxService) Bind(deviceSN string) *MaxService {
	c := *m
	c.bound = deviceSN
	return &c
}

// MaxDetails is the device/max/max_data_info response payload.
type MaxDetails struct {
	Data struct {
		Address              int     `json:"address"`
		Alias                string  `json:"alias"`
		BigDevice            bool    `json:"bigDevice"`
		CommunicationVersion string  `json:"communicationVersion"`
		DataloggerSN         string  `json:"dataloggerSn"`
		EToday               float64 `json:"eToday"`
		ETotal               float64 `json:"eTotal"`
		EnergyMonth          float64 `json:"energyMonth"`
		FwVersion            string  `json:"fwVersion"`
		GroupID              int     `json:"groupId"`
		ID                   int     `json:"id"`
		ImgPath              string  `json:"imgPath"`
		InnerVersion         string  `json:"innerVersion"`
		LastUpdateTime       string  `json:"lastUpdateTimeText"`
		Lost                 bool    `json:"lost"`
		Model                int64   `json:"model"`
		ModelText            string  `json:"modelText"`
		PlantID              int     `json:"plantId"`
		PortName             string  `json:"portName"`
		Power                float64 `json:"power"`
		SerialNum            string  `json:"serialNum"`
		Status               int     `json:"status"`
		StatusText           string  `json:"statusText"`
		TcpServerIP          string  `json:"tcpServerIp"`
		UserID               int     `json:"userId"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one MAX inverter.
func (m *MaxService) Details(deviceSN string) (*MaxDetails, error) {
	sn, err := resolveSN("max.details", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MaxDetails)
	if err := m.s.getInto("max.details", "device/max/max_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("max.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxEnergy is the device/max/max_last_data response payload.
type MaxEnergy struct {
	Data struct {
		CalendarTime   int64   `json:"calendarTime"`
		EacToday       float64 `json:"eacToday"`
		EacTotal       float64 `json:"eacTotal"`
		EpvTotal       float64 `json:"epvTotal"`
		Fac            float64 `json:"fac"`
		Iac1           float64 `json:"iac1"`
		Iac2           float64 `json:"iac2"`
		Iac3           float64 `json:"iac3"`
		IpmTemperature float64 `json:"ipmTemperature"`
		Ipv1           float64 `json:"ipv1"`
		Ipv2           float64 `json:"ipv2"`
		Ipv3           float64 `json:"ipv3"`
		Ipv4           float64 `json:"ipv4"`
		Pac            float64 `json:"pac"`
		Pf             float64 `json:"pf"`
		Ppv            float64 `json:"ppv"`
		Ppv1           float64 `json:"ppv1"`
		Ppv2           float64 `json:"ppv2"`
		Ppv3           float64 `json:"ppv3"`
		Ppv4           float64 `json:"ppv4"`
		Status         int     `json:"status"`
		Temperature    float64 `json:"temperature"`
		Time           string  `json:"time"`
		Vac1           float64 `json:"vac1"`
		Vac2           float64 `json:"vac2"`
		Vac3           float64 `json:"vac3"`
		Vpv1           float64 `json:"vpv1"`
		Vpv2           float64 `json:"vpv2"`
		Vpv3           float64 `json:"vpv3"`
		Vpv4           float64 `json:"vpv4"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one MAX inverter.
func (m *MaxService) Energy(deviceSN string) (*MaxEnergy, error) {
	sn, err := resolveSN("max.energy", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MaxEnergy)
	if err := m.s.postInto("max.energy", "device/max/max_last_data",
		url.Values{"max_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("max.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyMultiple returns the latest telemetry of up to 100 MAX inverters in
// one batch. MAX batches are served by the tlx batch endpoint.
func (m *MaxService) EnergyMultiple(deviceSNs []string, page int) (*EnergyMultiple, error) {
	return m.s.energyMultiple("max.energy_multiple", "device/tlx/tlxs_data", "tlxs", deviceSNs, page)
}

// MaxEnergySample is one historical telemetry row of a MAX inverter.
type MaxEnergySample struct {
	Time         string  `json:"time"`
	CalendarTime int64   `json:"calendarTime"`
	EacToday     float64 `json:"eacToday"`
	EacTotal     float64 `json:"eacTotal"`
	Fac          float64 `json:"fac"`
	Pac          float64 `json:"pac"`
	Ppv          float64 `json:"ppv"`
	Status       int     `json:"status"`
	Temperature  float64 `json:"temperature"`
}

// MaxEnergyHistory is the device/tlx/tlx_data response payload for MAX
// devices (history is served through the tlx endpoint group).
type MaxEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		TlxSN string            `json:"tlx_sn"`
		Datas []MaxEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (m *MaxService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*MaxEnergyHistory, error) {
	sn, err := resolveSN("max.energy_history", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("max.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"tlx_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(MaxEnergyHistory)
	if err := m.s.postInto("max.energy_history", "device/tlx/tlx_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one MAX inverter for a day (defaults to
// today).
func (m *MaxService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("max.alarms", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"max_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return m.s.alarmsInto("max.alarms", "device/max/alarm_data", form, false, "max_sn")
}

// Settings returns the current settings of one MAX inverter (served through
// the tlx endpoint group).
func (m *MaxService) Settings(deviceSN string) (*MinSettings, error) {
	sn, err := resolveSN("max.settings", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MinSettings)
	if err := m.s.getInto("max.settings", "device/tlx/tlx_set_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingRead reads a named parameter or register range from one MAX
// inverter.
func (m *MaxService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("max.setting_read", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("max.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := m.s.postIntoStrict("max.setting_read", "readMinParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one MAX inverter. The tlx set endpoint takes at most 19 values, passed
// as param1..param19.
func (m *MaxService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("max.setting_write", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("max.setting_write", "tlx_sn", sn, "type", paramID, values, paramKey, 19)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := m.s.postIntoStrict("max.setting_write", "tlxSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailsV4 returns the basic information of one MAX inverter through the
// v4 generation of the API.
func (m *MaxService) DetailsV4(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("max.details_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.Details(DeviceTypeMax, sn)
}

// EnergyV4 returns the latest telemetry of one MAX inverter through the v4
// generation of the API.
func (m *MaxService) EnergyV4(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("max.energy_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.Energy(DeviceTypeMax, sn)
}

// EnergyHistoryV4 returns one day of telemetry of one MAX inverter through
// the v4 generation of the API.
func (m *MaxService) EnergyHistoryV4(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("max.energy_history_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.EnergyHistory(DeviceTypeMax, sn, day)
}
