package growatt

import (
	"net/url"
	"time"
)

// SphService covers the SPH storage hybrid family (device list type 5,
// type-info code 17). The v1 endpoints call the family "mix".
type SphService struct {
	s     *session
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (sp *SphService) Bind(deviceSN string) *SphService {
	c := *sp
	c.bound = deviceSN
	return &c
}

// SphDetails is the device/mix/mix_data_info response payload.
type SphDetails struct {
	Data struct {
		AcChargeEnable         bool    `json:"acChargeEnable"`
		Address                int     `json:"address"`
		Alias                  string  `json:"alias"`
		BatteryType            int     `json:"batteryType"`
		ChargePowerCommand     int     `json:"chargePowerCommand"`
		DataloggerSN           string  `json:"dataloggerSn"`
		DischargePowerCommand  int     `json:"dischargePowerCommand"`
		EpsEnable              bool    `json:"epsEnable"`
		EToday                 float64 `json:"eToday"`
		ETotal                 float64 `json:"eTotal"`
		FwVersion              string  `json:"fwVersion"`
		GroupID                int     `json:"groupId"`
		ID                     int     `json:"id"`
		InnerVersion           string  `json:"innerVersion"`
		LastUpdateTime         string  `json:"lastUpdateTimeText"`
		Lost                   bool    `json:"lost"`
		ModelText              string  `json:"modelText"`
		PlantID                int     `json:"plantId"`
		Pmax                   float64 `json:"pmax"`
		SerialNum              string  `json:"serialNum"`
		Status                 int     `json:"status"`
		StatusText             string  `json:"statusText"`
		TcpServerIP            string  `json:"tcpServerIp"`
		UserID                 int     `json:"userId"`
		WchargeSocLowLimit1    int     `json:"wchargeSOCLowLimit1"`
		WdisChargeSocLowLimit1 int     `json:"wdisChargeSOCLowLimit1"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one SPH hybrid.
func (sp *SphService) Details(deviceSN string) (*SphDetails, error) {
	sn, err := resolveSN("sph.details", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	out := new(SphDetails)
	if err := sp.s.getInto("sph.details", "device/mix/mix_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("sph.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// SphEnergy is the device/mix/mix_last_data response payload.
type SphEnergy struct {
	Data struct {
		CalendarTime    int64   `json:"calendarTime"`
		EAcChargeToday  float64 `json:"eAcCharge"`
		EChargeToday    float64 `json:"echargeToday"`
		EChargeTotal    float64 `json:"echargeTotal"`
		EDischargeToday float64 `json:"edischargeToday"`
		EDischargeTotal float64 `json:"edischargeTotal"`
		ELocalLoadToday float64 `json:"elocalLoadToday"`
		ELocalLoadTotal float64 `json:"elocalLoadTotal"`
		EToGridToday    float64 `json:"etoGridToday"`
		EToGridTotal    float64 `json:"etogridTotal"`
		EpvToday        float64 `json:"epvToday"`
		EpvTotal        float64 `json:"epvTotal"`
		Fac             float64 `json:"fac"`
		Pac             float64 `json:"pac"`
		PacToGrid       float64 `json:"pactogrid"`
		PacToUser       float64 `json:"pactouser"`
		PCharge         float64 `json:"pcharge1"`
		PDischarge      float64 `json:"pdisCharge1"`
		PLocalLoad      float64 `json:"plocaLoad"`
		Ppv             float64 `json:"ppv"`
		Ppv1            float64 `json:"ppv1"`
		Ppv2            float64 `json:"ppv2"`
		Priority        int     `json:"priorityChoose"`
		Soc             float64 `json:"soc"`
		Status          int     `json:"status"`
		Time            string  `json:"time"`
		VBat            float64 `json:"vbat"`
		Vpv1            float64 `json:"vpv1"`
		Vpv2            float64 `json:"vpv2"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one SPH hybrid.
func (sp *SphService) Energy(deviceSN string) (*SphEnergy, error) {
	sn, err := resolveSN("sph.energy", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	out := new(SphEnergy)
	if err := sp.s.postInto("sph.energy", "device/mix/mix_last_data",
		url.Values{"mix_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("sph.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyMultiple returns the latest telemetry of up to 100 SPH hybrids in
// one batch.
func (sp *SphService) EnergyMultiple(deviceSNs []string, page int) (*EnergyMultiple, error) {
	return sp.s.energyMultiple("sph.energy_multiple", "device/mix/mixs_data", "mixs", deviceSNs, page)
}

// SphEnergySample is one historical telemetry row of an SPH hybrid.
type SphEnergySample struct {
	Time            string  `json:"time"`
	CalendarTime    int64   `json:"calendarTime"`
	EChargeToday    float64 `json:"echargeToday"`
	EDischargeToday float64 `json:"edischargeToday"`
	EpvToday        float64 `json:"epvToday"`
	Pac             float64 `json:"pac"`
	PCharge         float64 `json:"pcharge1"`
	PDischarge      float64 `json:"pdisCharge1"`
	Ppv             float64 `json:"ppv"`
	Soc             float64 `json:"soc"`
	Status          int     `json:"status"`
}

// SphEnergyHistory is the device/mix/mix_data response payload.
type SphEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		MixSN string            `json:"mix_sn"`
		Datas []SphEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (sp *SphService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*SphEnergyHistory, error) {
	sn, err := resolveSN("sph.energy_history", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("sph.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"mix_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(SphEnergyHistory)
	if err := sp.s.postInto("sph.energy_history", "device/mix/mix_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one SPH hybrid for a day (defaults to
// today).
func (sp *SphService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("sph.alarms", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"mix_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return sp.s.alarmsInto("sph.alarms", "device/mix/alarm_data", form, false, "mix_sn")
}

// SettingRead reads a named parameter or register range from one SPH
// hybrid.
func (sp *SphService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("sph.setting_read", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("sph.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := sp.s.postIntoStrict("sph.setting_read", "readMixParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one SPH hybrid. The mix set endpoint takes at most 18 values, passed
// as param1..param18.
func (sp *SphService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("sph.setting_write", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("sph.setting_write", "mix_sn", sn, "type", paramID, values, paramKey, 18)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := sp.s.postIntoStrict("sph.setting_write", "mixSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailsV4 returns the basic information of one SPH hybrid through the v4
// generation of the API.
func (sp *SphService) DetailsV4(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("sph.details_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.Details(DeviceTypeSph, sn)
}

// EnergyV4 returns the latest telemetry of one SPH hybrid through the v4
// generation of the API.
func (sp *SphService) EnergyV4(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("sph.energy_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.Energy(DeviceTypeSph, sn)
}

// EnergyHistoryV4 returns one day of telemetry of one SPH hybrid through
// the v4 generation of the API.
func (sp *SphService) EnergyHistoryV4(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("sph.energy_history_v4", deviceSN, sp.bound)
	if err != nil {
		return nil, err
	}
	return sp.v4.EnergyHistory(DeviceTypeSph, sn, day)
}
