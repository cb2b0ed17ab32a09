package growatt

import (
	"encoding/json"
	"net/url"
	"time"
)

// MinService covers the MIN/TLX family (device list type 7, type-info code
// 22), the vendor's residential string inverters. The v1 endpoints call the
// family "tlx"; the newer v4 generation calls it "min", so this service
// exposes both.
type MinService struct {
	s     *session
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (m *MinService) Bind(deviceSN string) *MinService {
	c := *m
	c.bound = deviceSN
	return &c
}

// GrowattTime is the vendor's exploded timestamp object, embedded in the
// details payloads. Time is milliseconds since the Unix epoch, Year is an
// offset from 1900 and Month is zero-based.
type GrowattTime struct {
	Date           int   `json:"date"`
	Day            int   `json:"day"`
	Hours          int   `json:"hours"`
	Minutes        int   `json:"minutes"`
	Month          int   `json:"month"`
	Seconds        int   `json:"seconds"`
	Time           int64 `json:"time"`
	TimezoneOffset int   `json:"timezoneOffset"`
	Year           int   `json:"year"`
}

// MinDetailData is the documented field set of the MIN details payload. The
// wire names are inconsistent (addr, dataLogSn, bagingTestStep,
// optimezerList, plantname, trakerModel and friends), so the tags follow the
// vendor docs rather than a uniform casing. Fields the docs leave untyped or
// show as nested blobs stay raw.
type MinDetailData struct {
	AfciVersion           string            `json:"afciVersion"`
	Address               int               `json:"addr"`
	Alias                 string            `json:"alias"`
	BatAgingTestStep      int               `json:"bagingTestStep"`
	BatParallelNum        int               `json:"batParallelNum"`
	BatSeriesNum          int               `json:"batSeriesNum"`
	BatSysEnergy          float64           `json:"batSysEnergy"`
	BatTempLowerLimitC    float64           `json:"batTempLowerLimitC"`
	BatTempLowerLimitD    float64           `json:"batTempLowerLimitD"`
	BatTempUpperLimitC    float64           `json:"batTempUpperLimitC"`
	BatTempUpperLimitD    float64           `json:"batTempUpperLimitD"`
	BatteryType           int               `json:"batteryType"`
	Baudrate              float64           `json:"wselectBaudrate"`
	BctAdjust             int               `json:"bctAdjust"`
	BctMode               int               `json:"bctMode"`
	BcuVersion            string            `json:"bcuVersion"`
	Bdc1Model             string            `json:"bdc1Model"`
	Bdc1SN                string            `json:"bdc1Sn"`
	Bdc1Version           string            `json:"bdc1Version"`
	BdcAuthVersion        int               `json:"bdcAuthversion"`
	BdcMode               int               `json:"bdcMode"`
	BmsCommunicationType  int               `json:"bmsCommunicationType"`
	BmsSoftwareVersion    string            `json:"bmsSoftwareVersion"`
	Children              []json.RawMessage `json:"children"`
	ComAddress            int               `json:"comAddress"`
	CommunicationVersion  string            `json:"communicationVersion"`
	CountrySelected       int               `json:"countrySelected"`
	DataloggerSN          string            `json:"dataLogSn"`
	DeviceType            int               `json:"deviceType"`
	Dtc                   int               `json:"dtc"`
	EToday                float64           `json:"eToday"`
	ETotal                float64           `json:"eTotal"`
	EnergyDayMap          json.RawMessage   `json:"energyDayMap"`
	EnergyMonth           float64           `json:"energyMonth"`
	EnergyMonthText       string            `json:"energyMonthText"`
	FwVersion             string            `json:"fwVersion"`
	GroupID               int               `json:"groupId"`
	HwVersion             string            `json:"hwVersion"`
	ID                    int               `json:"id"`
	ImgPath               string            `json:"imgPath"`
	InnerVersion          string            `json:"innerVersion"`
	LastUpdateTime        GrowattTime       `json:"lastUpdateTime"`
	LastUpdateTimeText    string            `json:"lastUpdateTimeText"`
	Level                 int               `json:"level"`
	LiBatteryFwVersion    int               `json:"liBatteryFwVersion"`
	LiBatteryManufacturer int               `json:"liBatteryManufacturers"`
	Location              string            `json:"location"`
	Lost                  bool              `json:"lost"`
	Manufacturer          string            `json:"manufacturer"`
	ModbusVersion         int               `json:"modbusVersion"`
	Model                 int64             `json:"model"`
	ModelText             string            `json:"modelText"`
	MonitorVersion        string            `json:"monitorVersion"`
	Mppt                  float64           `json:"mppt"`
	OptimizerList         []json.RawMessage `json:"optimezerList"`
	PCharge               float64           `json:"pCharge"`
	PDischarge            float64           `json:"pDischarge"`
	ParentID              string            `json:"parentID"`
	PlantID               int               `json:"plantId"`
	PlantName             string            `json:"plantname"`
	Pmax                  int               `json:"pmax"`
	PortName              string            `json:"portName"`
	Power                 float64           `json:"power"`
	PowerMax              json.RawMessage   `json:"powerMax"`
	PowerMaxText          string            `json:"powerMaxText"`
	PowerMaxTime          string            `json:"powerMaxTime"`
	PriorityChoose        int               `json:"priorityChoose"`
	Record                json.RawMessage   `json:"record"`
	RestartTime           int               `json:"restartTime"`
	SafetyVersion         int               `json:"safetyVersion"`
	SerialNum             string            `json:"serialNum"`
	StartTime             int               `json:"startTime"`
	Status                int               `json:"status"`
	StatusText            string            `json:"statusText"`
	StrNum                int               `json:"strNum"`
	SysTime               string            `json:"sysTime"`
	TcpServerIP           string            `json:"tcpServerIp"`
	Timezone              float64           `json:"timezone"`
	TlxSetBean            json.RawMessage   `json:"tlxSetbean"`
	TrackerModel          int               `json:"trakerModel"`
	TreeID                string            `json:"treeID"`
	TreeName              string            `json:"treeName"`
	Updating              bool              `json:"updating"`
	UserName              string            `json:"userName"`
	VbatStartForDischarge float64           `json:"vbatStartForDischarge"`
	VbatStopForCharge     float64           `json:"vbatStopForCharge"`
	VbatStopForDischarge  float64           `json:"vbatStopForDischarge"`
	VbatWarnClr           float64           `json:"vbatWarnClr"`
	VbatWarning           float64           `json:"vbatWarning"`
	Vnormal               float64           `json:"vnormal"`
	VppOpen               float64           `json:"vppOpen"`
}

// MinDetails is the device/tlx/tlx_data_info response payload.
type MinDetails struct {
	Data         MinDetailData `json:"data"`
	DataloggerSN string        `json:"datalogger_sn"`
	DeviceSN     string        `json:"device_sn"`
	ErrorCode    int           `json:"error_code"`
	ErrorMsg     string        `json:"error_msg"`
}

// Details returns the basic information of one MIN inverter.
func (m *MinService) Details(deviceSN string) (*MinDetails, error) {
	sn, err := resolveSN("min.details", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MinDetails)
	if err := m.s.getInto("min.details", "device/tlx/tlx_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("min.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// MinSettings is the device/tlx/tlx_set_info response payload: the full
// current settings of one MIN inverter.
type MinSettings struct {
	Data struct {
		AcChargeEnable        int     `json:"acChargeEnable"`
		ActivePowerRate       int     `json:"activePowerRate"`
		BackflowSetting       string  `json:"backflowSetting"`
		ChargePowerCommand    int     `json:"chargePowerCommand"`
		DischargePowerCommand int     `json:"dischargePowerCommand"`
		EpsEnable             int     `json:"epsEnable"`
		ExportLimit           int     `json:"exportLimit"`
		ExportLimitPowerRate  float64 `json:"exportLimitPowerRate"`
		FailsafeEnable        int     `json:"failsafeEnable"`
		OnOff                 int     `json:"onOff"`
		PfValue               float64 `json:"pfValue"`
		PvGridVoltageHigh     float64 `json:"pvGridVoltageHigh"`
		PvGridVoltageLow      float64 `json:"pvGridVoltageLow"`
		SysTime               string  `json:"sysTime"`
		TimeSegment1          string  `json:"timeSegment1"`
		TimeSegment2          string  `json:"timeSegment2"`
		TimeSegment3          string  `json:"timeSegment3"`
		TimeSegment4          string  `json:"timeSegment4"`
		TimeSegment5          string  `json:"timeSegment5"`
		TimeSegment6          string  `json:"timeSegment6"`
		TimeSegment7          string  `json:"timeSegment7"`
		TimeSegment8          string  `json:"timeSegment8"`
		TimeSegment9          string  `json:"timeSegment9"`
		WchargeSocLowLimit    int     `json:"wchargeSOCLowLimit"`
		WdisChargeSocLowLimit int     `json:"wdisChargeSOCLowLimit"`
	} `json:"data"`
	DeviceSN  string `json:"device_sn"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Settings returns the current settings of one MIN inverter.
func (m *MinService) Settings(deviceSN string) (*MinSettings, error) {
	sn, err := resolveSN("min.settings", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MinSettings)
	if err := m.s.getInto("min.settings", "device/tlx/tlx_set_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MinEnergy is the device/tlx/tlx_last_data response payload.
type MinEnergy struct {
	Data struct {
		CalendarTime int64   `json:"calendarTime"`
		EacToday     float64 `json:"eacToday"`
		EacTotal     float64 `json:"eacTotal"`
		EpvToday     float64 `json:"epvToday"`
		EpvTotal     float64 `json:"epvTotal"`
		Epv1Today    float64 `json:"epv1Today"`
		Epv1Total    float64 `json:"epv1Total"`
		Epv2Today    float64 `json:"epv2Today"`
		Epv2Total    float64 `json:"epv2Total"`
		Fac          float64 `json:"fac"`
		Iac1         float64 `json:"iac1"`
		Ipv1         float64 `json:"ipv1"`
		Ipv2         float64 `json:"ipv2"`
		Pac          float64 `json:"pac"`
		Pac1         float64 `json:"pac1"`
		PowerFactor  float64 `json:"powerFactor"`
		Ppv          float64 `json:"ppv"`
		Ppv1         float64 `json:"ppv1"`
		Ppv2         float64 `json:"ppv2"`
		Status       int     `json:"status"`
		Temp1        float64 `json:"temp1"`
		Temp2        float64 `json:"temp2"`
		Time         string  `json:"time"`
		Vac1         float64 `json:"vac1"`
		Vpv1         float64 `json:"vpv1"`
		Vpv2         float64 `json:"vpv2"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one MIN inverter.
func (m *MinService) Energy(deviceSN string) (*MinEnergy, error) {
	sn, err := resolveSN("min.energy", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	out := new(MinEnergy)
	if err := m.s.postInto("min.energy", "device/tlx/tlx_last_data",
		url.Values{"tlx_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("min.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// EnergyMultiple returns the latest telemetry of up to 100 MIN inverters in
// one batch.
func (m *MinService) EnergyMultiple(deviceSNs []string, page int) (*EnergyMultiple, error) {
	return m.s.energyMultiple("min.energy_multiple", "device/tlx/tlxs_data", "tlxs", deviceSNs, page)
}

// MinEnergySample is one historical telemetry row of a MIN inverter.
type MinEnergySample struct {
	Time         string  `json:"time"`
	CalendarTime int64   `json:"calendarTime"`
	EacToday     float64 `json:"eacToday"`
	EacTotal     float64 `json:"eacTotal"`
	EpvToday     float64 `json:"epvToday"`
	Fac          float64 `json:"fac"`
	Pac          float64 `json:"pac"`
	Ppv          float64 `json:"ppv"`
	Status       int     `json:"status"`
}

// MinEnergyHistory is the device/tlx/tlx_data response payload. History is
// kept for roughly 95 days; windows entirely before that horizon return an
// empty result rather than an error.
type MinEnergyHistory struct {
	Data struct {
		Count int               `json:"count"`
		TlxSN string            `json:"tlx_sn"`
		Datas []MinEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (m *MinService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*MinEnergyHistory, error) {
	sn, err := resolveSN("min.energy_history", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("min.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"tlx_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(MinEnergyHistory)
	if err := m.s.postInto("min.energy_history", "device/tlx/tlx_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one MIN inverter for a day (defaults to
// today).
func (m *MinService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("min.alarms", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"tlx_sn": {sn},
		"date":   {day.Format(dateFormat)},
	}
	page.apply(form)
	return m.s.alarmsInto("min.alarms", "device/tlx/alarm_data", form, false, "tlx_sn")
}

// SettingRead reads a named parameter or register range from one MIN
// inverter.
func (m *MinService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("min.setting_read", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("min.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := m.s.postIntoStrict("min.setting_read", "readMinParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one MIN inverter. The tlx set endpoint takes at most 19 values, passed
// as param1..param19.
func (m *MinService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("min.setting_write", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("min.setting_write", "tlx_sn", sn, "type", paramID, values, paramKey, 19)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := m.s.postIntoStrict("min.setting_write", "tlxSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DetailsV4 returns the basic information of one MIN inverter through the
// v4 generation of the API.
func (m *MinService) DetailsV4(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("min.details_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.Details(DeviceTypeMin, sn)
}

// EnergyV4 returns the latest telemetry of one MIN inverter through the v4
// generation of the API.
func (m *MinService) EnergyV4(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("min.energy_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.Energy(DeviceTypeMin, sn)
}

// EnergyHistoryV4 returns one day of telemetry of one MIN inverter through
// the v4 generation of the API.
func (m *MinService) EnergyHistoryV4(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("min.energy_history_v4", deviceSN, m.bound)
	if err != nil {
		return nil, err
	}
	return m.v4.EnergyHistory(DeviceTypeMin, sn, day)
}
