package growatt

import (
	"net/url"
	"time"
)

// InverterService covers the plain grid-tie inverter family (device list
// type 1, type-info code 16).
type InverterService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number, so the
// per-call serial can be omitted.
func (i *InverterService) Bind(deviceSN string) *InverterService {
	c := *i
	c.bound = deviceSN
	return &c
}

// InverterDetails is the device/inverter/inv_data_info response payload.
type InverterDetails struct {
	Data struct {
		Address        int     `json:"address"`
		Alias          string  `json:"alias"`
		BigDevice      bool    `json:"bigDevice"`
		DataloggerSN   string  `json:"dataloggerSn"`
		EToday         float64 `json:"eToday"`
		ETotal         float64 `json:"eTotal"`
		EnergyMonth    float64 `json:"energyMonth"`
		FwVersion      string  `json:"fwVersion"`
		GroupID        int     `json:"groupId"`
		ID             int     `json:"id"`
		InnerVersion   string  `json:"innerVersion"`
		IpmTemperature float64 `json:"ipmTemperature"`
		LastUpdateTime string  `json:"lastUpdateTimeText"`
		Lost           bool    `json:"lost"`
		ModelText      string  `json:"modelText"`
		NominalPower   int     `json:"nominalPower"`
		PlantID        int     `json:"plantId"`
		Power          float64 `json:"power"`
		SerialNum      string  `json:"serialNum"`
		Status         int     `json:"status"`
		StatusText     string  `json:"statusText"`
		TcpServerIP    string  `json:"tcpServerIp"`
		Temperature    float64 `json:"temperature"`
		UserID         int     `json:"userId"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one inverter.
func (i *InverterService) Details(deviceSN string) (*InverterDetails, error) {
	sn, err := resolveSN("inverter.details", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	out := new(InverterDetails)
	if err := i.s.getInto("inverter.details", "device/inverter/inv_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("inverter.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// InverterEnergy is the device/inverter/last_new_data response payload: the
// most recent telemetry sample of one inverter.
type InverterEnergy struct {
	Data struct {
		Time         string  `json:"time"`
		EpvTotal     float64 `json:"epvTotal"`
		EpvToday     float64 `json:"epvToday"`
		EacToday     float64 `json:"eacToday"`
		EacTotal     float64 `json:"eacTotal"`
		Fac          float64 `json:"fac"`
		Pac          float64 `json:"pac"`
		Ppv          float64 `json:"ppv"`
		Ipv1         float64 `json:"ipv1"`
		Ipv2         float64 `json:"ipv2"`
		Vpv1         float64 `json:"vpv1"`
		Vpv2         float64 `json:"vpv2"`
		Ppv1         float64 `json:"ppv1"`
		Ppv2         float64 `json:"ppv2"`
		Iac1         float64 `json:"iac1"`
		Iac2         float64 `json:"iac2"`
		Iac3         float64 `json:"iac3"`
		Vac1         float64 `json:"vac1"`
		Vac2         float64 `json:"vac2"`
		Vac3         float64 `json:"vac3"`
		Temperature  float64 `json:"temperature"`
		PowerFactor  float64 `json:"powerFactor"`
		Status       int     `json:"status"`
		InverterID   string  `json:"inverterId"`
		PowerToday   float64 `json:"powerToday"`
		PowerTotal   float64 `json:"powerTotal"`
		TimeCalendar int64   `json:"timeCalendar"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one inverter.
func (i *InverterService) Energy(deviceSN string) (*InverterEnergy, error) {
	sn, err := resolveSN("inverter.energy", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	out := new(InverterEnergy)
	if err := i.s.getInto("inverter.energy", "device/inverter/last_new_data",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("inverter.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyMultiple returns the latest telemetry of up to 100 inverters in one
// batch.
func (i *InverterService) EnergyMultiple(deviceSNs []string, page int) (*EnergyMultiple, error) {
	return i.s.energyMultiple("inverter.energy_multiple", "device/inverter/invs_data", "inverters", deviceSNs, page)
}

// InverterEnergySample is one historical telemetry row.
type InverterEnergySample struct {
	Time     string  `json:"time"`
	EacToday float64 `json:"eacToday"`
	EacTotal float64 `json:"eacTotal"`
	Pac      float64 `json:"pac"`
	Ppv      float64 `json:"ppv"`
	Fac      float64 `json:"fac"`
	Vac1     float64 `json:"vac1"`
	Iac1     float64 `json:"iac1"`
	Status   int     `json:"status"`
}

// InverterEnergyHistory is the device/inverter/data response payload.
// History is kept by the vendor for roughly 95 days; queries entirely
// before that horizon return an empty result rather than an error.
type InverterEnergyHistory struct {
	Data struct {
		Count int                    `json:"count"`
		Datas []InverterEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (i *InverterService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*InverterEnergyHistory, error) {
	sn, err := resolveSN("inverter.energy_history", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("inverter.energy_history", r)
	if err != nil {
		return nil, err
	}
	params := url.Values{"device_sn": {sn}}
	r.apply(params)
	setOptString(params, "timezone_id", timezone)
	page.apply(params)
	out := new(InverterEnergyHistory)
	if err := i.s.getInto("inverter.energy_history", "device/inverter/data", params, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one inverter for a day (defaults to today).
func (i *InverterService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("inverter.alarms", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	params := url.Values{
		"device_sn": {sn},
		"date":      {day.Format(dateFormat)},
	}
	page.apply(params)
	return i.s.alarmsInto("inverter.alarms", "device/inverter/alarm", params, true, "sn")
}

// SettingRead reads a named parameter or register range from one inverter.
func (i *InverterService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("inverter.setting_read", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("inverter.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := i.s.postIntoStrict("inverter.setting_read", "readInverterParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one inverter. The inverter set endpoint takes at most two values,
// passed as command_1 and command_2.
func (i *InverterService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("inverter.setting_write", deviceSN, i.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("inverter.setting_write", "device_sn", sn, "paramId", paramID, values, commandKey, 2)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := i.s.postIntoStrict("inverter.setting_write", "inverterSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
