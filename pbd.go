package growatt

import (
	"net/url"
	"time"
)

// PbdService covers the PBD DC charger family (device list type 10,
// type-info code 83).
type PbdService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (p *PbdService) Bind(deviceSN string) *PbdService {
	c := *p
	c.bound = deviceSN
	return &c
}

// PbdDetails is the device/pbd/pbd_data_info response payload.
type PbdDetails struct {
	Data struct {
		Address        int    `json:"address"`
		Alias          string `json:"alias"`
		DataloggerSN   string `json:"dataloggerSn"`
		FwVersion      string `json:"fwVersion"`
		GroupID        int    `json:"groupId"`
		ID             int    `json:"id"`
		InnerVersion   string `json:"innerVersion"`
		LastUpdateTime string `json:"lastUpdateTimeText"`
		Lost           bool   `json:"lost"`
		ModelText      string `json:"modelText"`
		NormalPower    int    `json:"normalPower"`
		PlantID        int    `json:"plantId"`
		SerialNum      string `json:"serialNum"`
		Status         int    `json:"status"`
		StatusText     string `json:"statusText"`
		TcpServerIP    string `json:"tcpServerIp"`
		UserID         int    `json:"userId"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one PBD unit.
func (p *PbdService) Details(deviceSN string) (*PbdDetails, error) {
	sn, err := resolveSN("pbd.details", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	out := new(PbdDetails)
	if err := p.s.getInto("pbd.details", "device/pbd/pbd_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("pbd.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// PbdEnergy is the device/pbd/pbd_last_data response payload.
type PbdEnergy struct {
	Data struct {
		CalendarTime int64   `json:"calendarTime"`
		EpvToday     float64 `json:"epvToday"`
		EpvTotal     float64 `json:"epvTotal"`
		Ipv          float64 `json:"ipv"`
		Ppv          float64 `json:"ppv"`
		Status       int     `json:"status"`
		Temperature  float64 `json:"temperature"`
		Time         string  `json:"time"`
		VBus         float64 `json:"vBus"`
		Vpv          float64 `json:"vpv"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one PBD unit.
func (p *PbdService) Energy(deviceSN string) (*PbdEnergy, error) {
	sn, err := resolveSN("pbd.energy", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	out := new(PbdEnergy)
	if err := p.s.postInto("pbd.energy", "device/pbd/pbd_last_data",
		url.Values{"pbd_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("pbd.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// PbdEnergySample is one historical telemetry row of a PBD unit.
type PbdEnergySample struct {
	Time         string  `json:"time"`
	CalendarTime int64   `json:"calendarTime"`
	EpvToday     float64 `json:"epvToday"`
	Ipv          float64 `json:"ipv"`
	Ppv          float64 `json:"ppv"`
	Status       int     `json:"status"`
	Vpv          float64 `json:"vpv"`
}

// PbdEnergyHistory is the device/pbd/pbd_data response payload.
type PbdEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		PbdSN string            `json:"pbd_sn"`
		Datas []PbdEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (p *PbdService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*PbdEnergyHistory, error) {
	sn, err := resolveSN("pbd.energy_history", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("pbd.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"pbd_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(PbdEnergyHistory)
	if err := p.s.postInto("pbd.energy_history", "device/pbd/pbd_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one PBD unit for a day (defaults to today).
func (p *PbdService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("pbd.alarms", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"pbd_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return p.s.alarmsInto("pbd.alarms", "device/pbd/alarm_data", form, false, "pbd_sn")
}
