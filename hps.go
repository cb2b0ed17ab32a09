package growatt

import (
	"net/url"
	"time"
)

// HpsService covers the HPS hybrid power station family (device list type
// 9, type-info code 82).
type HpsService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (h *HpsService) Bind(deviceSN string) *HpsService {
	c := *h
	c.bound = deviceSN
	return &c
}

// HpsDetails is the device/hps/hps_data_info response payload.
type HpsDetails struct {
	Data struct {
		Address        int     `json:"address"`
		Alias          string  `json:"alias"`
		DataloggerSN   string  `json:"dataloggerSn"`
		EToday         float64 `json:"eToday"`
		ETotal         float64 `json:"eTotal"`
		FwVersion      string  `json:"fwVersion"`
		GroupID        int     `json:"groupId"`
		ID             int     `json:"id"`
		InnerVersion   string  `json:"innerVersion"`
		LastUpdateTime string  `json:"lastUpdateTimeText"`
		Lost           bool    `json:"lost"`
		ModelText      string  `json:"modelText"`
		NormalPower    int     `json:"normalPower"`
		PlantID        int     `json:"plantId"`
		SerialNum      string  `json:"serialNum"`
		Status         int     `json:"status"`
		StatusText     string  `json:"statusText"`
		TcpServerIP    string  `json:"tcpServerIp"`
		UserID         int     `json:"userId"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one HPS unit.
func (h *HpsService) Details(deviceSN string) (*HpsDetails, error) {
	sn, err := resolveSN("hps.details", deviceSN, h.bound)
	if err != nil {
		return nil, err
	}
	out := new(HpsDetails)
	if err := h.s.getInto("hps.details", "device/hps/hps_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("hps.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// HpsEnergy is the device/hps/hps_last_data response payload.
type HpsEnergy struct {
	Data struct {
		CalendarTime    int64   `json:"calendarTime"`
		EChargeToday    float64 `json:"eChargeToday"`
		EDischargeToday float64 `json:"eDischargeToday"`
		EpvToday        float64 `json:"epvToday"`
		EpvTotal        float64 `json:"epvTotal"`
		Fac             float64 `json:"fac"`
		PacToGrid       float64 `json:"pacToGrid"`
		PacToUser       float64 `json:"pacToUser"`
		PCharge         float64 `json:"pCharge"`
		PDischarge      float64 `json:"pDischarge"`
		Ppv             float64 `json:"ppv"`
		Soc             float64 `json:"soc"`
		Status          int     `json:"status"`
		Temperature     float64 `json:"temperature"`
		Time            string  `json:"time"`
		VBat            float64 `json:"vBat"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one HPS unit.
func (h *HpsService) Energy(deviceSN string) (*HpsEnergy, error) {
	sn, err := resolveSN("hps.energy", deviceSN, h.bound)
	if err != nil {
		return nil, err
	}
	out := new(HpsEnergy)
	if err := h.s.postInto("hps.energy", "device/hps/hps_last_data",
		url.Values{"hps_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("hps.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// HpsEnergySample is one historical telemetry row of an HPS unit.
type HpsEnergySample struct {
	Time            string  `json:"time"`
	CalendarTime    int64   `json:"calendarTime"`
	EChargeToday    float64 `json:"eChargeToday"`
	EDischargeToday float64 `json:"eDischargeToday"`
	EpvToday        float64 `json:"epvToday"`
	PCharge         float64 `json:"pCharge"`
	PDischarge      float64 `json:"pDischarge"`
	Ppv             float64 `json:"ppv"`
	Soc             float64 `json:"soc"`
	Status          int     `json:"status"`
}

// HpsEnergyHistory is the device/hps/hps_data response payload.
type HpsEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		HpsSN string            `json:"hps_sn"`
		Datas []HpsEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (h *HpsService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*HpsEnergyHistory, error) {
	sn, err := resolveSN("hps.energy_history", deviceSN, h.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("hps.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"hps_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(HpsEnergyHistory)
	if err := h.s.postInto("hps.energy_history", "device/hps/hps_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one HPS unit for a day (defaults to today).
func (h *HpsService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("hps.alarms", deviceSN, h.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"hps_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return h.s.alarmsInto("hps.alarms", "device/hps/alarm_data", form, false, "hps_sn")
}
