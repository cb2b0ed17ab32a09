package growatt

import (
	"net/url"
	"time"
)

// PcsService covers the PCS battery power conversion family (device list
// type 8, type-info code 81).
type PcsService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (p *PcsService) Bind(deviceSN string) *PcsService {
	c := *p
	c.bound = deviceSN
	return &c
}

// PcsDetails is the device/pcs/pcs_data_info response payload.
type PcsDetails struct {
	Data struct {
		Address         int     `json:"address"`
		Alias           string  `json:"alias"`
		DataloggerSN    string  `json:"dataloggerSn"`
		EChargeToday    float64 `json:"eChargeToday"`
		EDischargeToday float64 `json:"eDischargeToday"`
		FwVersion       string  `json:"fwVersion"`
		GroupID         int     `json:"groupId"`
		ID              int     `json:"id"`
		InnerVersion    string  `json:"innerVersion"`
		LastUpdateTime  string  `json:"lastUpdateTimeText"`
		Lost            bool    `json:"lost"`
		ModelText       string  `json:"modelText"`
		NormalPower     int     `json:"normalPower"`
		PlantID         int     `json:"plantId"`
		SerialNum       string  `json:"serialNum"`
		Status          int     `json:"status"`
		StatusText      string  `json:"statusText"`
		TcpServerIP     string  `json:"tcpServerIp"`
		UserID          int     `json:"userId"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one PCS unit.
func (p *PcsService) Details(deviceSN string) (*PcsDetails, error) {
	sn, err := resolveSN("pcs.details", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	out := new(PcsDetails)
	if err := p.s.getInto("pcs.details", "device/pcs/pcs_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("pcs.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// PcsEnergy is the device/pcs/pcs_last_data response payload.
type PcsEnergy struct {
	Data struct {
		CalendarTime    int64   `json:"calendarTime"`
		EChargeToday    float64 `json:"eChargeToday"`
		EChargeTotal    float64 `json:"eChargeTotal"`
		EDischargeToday float64 `json:"eDischargeToday"`
		EDischargeTotal float64 `json:"eDischargeTotal"`
		Fac             float64 `json:"fac"`
		IBat            float64 `json:"iBat"`
		OutPutPower     float64 `json:"outPutPower"`
		PCharge         float64 `json:"pCharge"`
		PDischarge      float64 `json:"pDischarge"`
		Soc             float64 `json:"soc"`
		Status          int     `json:"status"`
		Temperature     float64 `json:"temperature"`
		Time            string  `json:"time"`
		VBat            float64 `json:"vBat"`
		Vac1            float64 `json:"vac1"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one PCS unit.
func (p *PcsService) Energy(deviceSN string) (*PcsEnergy, error) {
	sn, err := resolveSN("pcs.energy", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	out := new(PcsEnergy)
	if err := p.s.postInto("pcs.energy", "device/pcs/pcs_last_data",
		url.Values{"pcs_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("pcs.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// PcsEnergySample is one historical telemetry row of a PCS unit.
type PcsEnergySample struct {
	Time            string  `json:"time"`
	CalendarTime    int64   `json:"calendarTime"`
	EChargeToday    float64 `json:"eChargeToday"`
	EDischargeToday float64 `json:"eDischargeToday"`
	PCharge         float64 `json:"pCharge"`
	PDischarge      float64 `json:"pDischarge"`
	Soc             float64 `json:"soc"`
	Status          int     `json:"status"`
}

// PcsEnergyHistory is the device/pcs/pcs_data response payload.
type PcsEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		PcsSN string            `json:"pcs_sn"`
		Datas []PcsEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (p *PcsService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*PcsEnergyHistory, error) {
	sn, err := resolveSN("pcs.energy_history", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("pcs.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"pcs_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(PcsEnergyHistory)
	if err := p.s.postInto("pcs.energy_history", "device/pcs/pcs_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one PCS unit for a day (defaults to today).
func (p *PcsService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("pcs.alarms", deviceSN, p.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"pcs_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return p.s.alarmsInto("pcs.alarms", "device/pcs/alarm_data", form, false, "pcs_sn")
}
