package growatt

import (
	"net/url"
	"time"
)

// SpaService covers the SPA AC-coupled retrofit family (device list type 6,
// type-info code 19). History is served through the mix endpoint group.
type SpaService struct {
	s     *session
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (sp *SpaService) Bind(deviceSN string) *SpaService {
	c := *sp
	c.bound = deviceSN
	return &c
}

// SpaDetails is the device/spa/spa_data_info response payload.
type SpaDetails struct {
	Data struct {
		Address            int     `json:"address"`
		Alias              string  `json:"alias"`
		BatteryType        int     `json:"batteryType"`
		ChargePowerCommand int     `json:"chargePowerCommand"`
		DataloggerSN       string  `json:"dataloggerSn"`
		EpsEnable          bool    `json:"epsEnable"`
		FwVersion          string  `json:"fwVersion"`
		GroupID            int     `json:"groupId"`
		ID                 int     `json:"id"`
		InnerVersion       string  `json:"innerVersion"`
		LastUpdateTime     string  `json:"lastUpdateTimeText"`
		Lost               bool    `json:"lost"`
		ModelText          string  `json:"modelText"`
		PlantID            int     `json:"plantId"`
		Pmax               float64 `json:"pmax"`
		SerialNum          string  `json:"serialNum"`
		Status             int     `json:"status"`
		StatusText         string  `json:"statusText"`
		TcpServerIP        string  `json:"tcpServerIp"`
		UserID             int     `json:"userId"`
		VbatStartForCharge float64 `json:"vbatStartForCharge"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one SPA device.
func (sp *SpaService) Details(deviceSN string) (*SpaDetails, error) {
	sn, err := resolveSN("spa.details", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	out := new(SpaDetails)
	if err := sp.s.getInto("spa.details", "device/spa/spa_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("spa.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// SpaEnergy is the device/spa/spa_last_data response payload.
type SpaEnergy struct {
	Data struct {
		CalendarTime    int64   `json:"calendarTime"`
		EChargeToday    float64 `json:"echargeToday"`
		EChargeTotal    float64 `json:"echargeTotal"`
		EDischargeToday float64 `json:"edischargeToday"`
		EDischargeTotal float64 `json:"edischargeTotal"`
		ELocalLoadToday float64 `json:"elocalLoadToday"`
		ELocalLoadTotal float64 `json:"elocalLoadTotal"`
		EToGridToday    float64 `json:"etoGridToday"`
		EToGridTotal    float64 `json:"etogridTotal"`
		Fac             float64 `json:"fac"`
		Pac             float64 `json:"pac"`
		PacToGrid       float64 `json:"pactogrid"`
		PacToUser       float64 `json:"pactouser"`
		PCharge         float64 `json:"pcharge1"`
		PDischarge      float64 `json:"pdisCharge1"`
		PLocalLoad      float64 `json:"plocaLoad"`
		Soc             float64 `json:"soc"`
		Status          int     `json:"status"`
		Time            string  `json:"time"`
		VBat            float64 `json:"vbat"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one SPA device.
func (sp *SpaService) Energy(deviceSN string) (*SpaEnergy, error) {
	sn, err := resolveSN("spa.energy", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	out := new(SpaEnergy)
	if err := sp.s.postInto("spa.energy", "device/spa/spa_last_data",
		url.Values{"spa_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("spa.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyMultiple returns the latest telemetry of up to 100 SPA units in one
// batch. SPA batches are served by the mix batch endpoint.
func (sp *SpaService) EnergyMultiple(deviceSNs []string, page int) (*EnergyMultiple, error) {
	return sp.s.energyMultiple("spa.energy_multiple", "device/mix/mixs_data", "mixs", deviceSNs, page)
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days. SPA history is served by the mix history endpoint.
func (sp *SpaService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*SphEnergyHistory, error) {
	sn, err := resolveSN("spa.energy_history", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("spa.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"mix_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(SphEnergyHistory)
	if err := sp.s.postInto("spa.energy_history", "device/mix/mix_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one SPA device for a day (defaults to
// today).
func (sp *SpaService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("spa.alarms", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"spa_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return sp.s.alarmsInto("spa.alarms", "device/spa/alarm_data", form, false, "spa_sn")
}

// SettingRead reads a named parameter or register range from one SPA
// device.
func (sp *SpaService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("spa.setting_read", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("spa.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := sp.s.postIntoStrict("spa.setting_read", "readSpaParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one SPA device. The spa set endpoint takes at most 18 values, passed
// as param1..param18.
func (sp *SpaService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("spa.setting_write", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("spa.setting_write", "spa_sn", sn, "type", paramID, values, paramKey, 18)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := sp.s.postIntoStrict("spa.setting_write", "spaSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailsV4 returns the basic information of one SPA device through the v4
// generation of the API.
func (sp *SpaService) DetailsV4(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("spa.details_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.Details(DeviceTypeSpa, sn)
}

// EnergyV4 returns the latest telemetry of one SPA device through the v4
// generation of the API.
func (sp *SpaService) EnergyV4(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("spa.energy_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.Energy(DeviceTypeSpa, sn)
}

// EnergyHistoryV4 returns one day of telemetry of one SPA device through
// the v4 generation of the API.
func (sp *SpaService) EnergyHistoryV4(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("spa.energy_history_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.EnergyHistory(DeviceTypeSpa, sn, day)
}
