package growatt

import (
	"net/url"
	"time"
)

// StorageService covers the battery storage family (device list type 2,
// type-info code 96).
type StorageService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (st *StorageService) Bind(deviceSN string) *StorageService {
	c := *st
	c.bound = deviceSN
	return &c
}

// StorageDetails is the device/storage/storage_data_info response payload.
type StorageDetails struct {
	Data struct {
		Address         int     `json:"address"`
		Alias           string  `json:"alias"`
		BatLowToUtiVolt float64 `json:"batLowToUtiVolt"`
		BatteryType     int     `json:"batteryType"`
		BulkChargeVolt  float64 `json:"bulkChargeVolt"`
		ChargeConfig    int     `json:"chargeConfig"`
		DataloggerSN    string  `json:"dataloggerSn"`
		DeviceType      int     `json:"deviceType"`
		FloatChargeVolt float64 `json:"floatChargeVolt"`
		FwVersion       string  `json:"fwVersion"`
		GroupID         int     `json:"groupId"`
		LastUpdateTime  string  `json:"lastUpdateTimeText"`
		Lost            bool    `json:"lost"`
		MaxChargeCurr   float64 `json:"maxChargeCurr"`
		ModelText       string  `json:"modelText"`
		OutputConfig    int     `json:"outputConfig"`
		OutputFreqType  int     `json:"outputFreqType"`
		OutputVoltType  int     `json:"outputVoltType"`
		PlantID         int     `json:"plantId"`
		RatePower       float64 `json:"ratePower"`
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

// Details returns the basic information of one storage device.
func (st *StorageService) Details(deviceSN string) (*StorageDetails, error) {
	sn, err := resolveSN("storage.details", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	out := new(StorageDetails)
	if err := st.s.getInto("storage.details", "device/storage/storage_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("storage.details", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// StorageEnergy is the device/storage/storage_last_data response payload.
type StorageEnergy struct {
	Data struct {
		CalendarTime   int64   `json:"calendarTime"`
		Capacity       float64 `json:"capacity"`
		ChargeToday    float64 `json:"chargeToday"`
		ChargeTotal    float64 `json:"chargeTotal"`
		DischargeToday float64 `json:"dischargeToday"`
		DischargeTotal float64 `json:"dischargeTotal"`
		EToUserToday   float64 `json:"eToUserToday"`
		EToUserTotal   float64 `json:"eToUserTotal"`
		EpvToday       float64 `json:"epvToday"`
		EpvTotal       float64 `json:"epvTotal"`
		FreqOutput     float64 `json:"freqOutput"`
		IChargePV1     float64 `json:"iChargePV1"`
		Ipv            float64 `json:"ipv"`
		OutPutPower    float64 `json:"outPutPower"`
		PCharge        float64 `json:"pCharge"`
		PDischarge     float64 `json:"pDischarge"`
		Ppv            float64 `json:"ppv"`
		Status         int     `json:"status"`
		Time           string  `json:"time"`
		VBat           float64 `json:"vBat"`
		VacOutput      float64 `json:"vacOutput"`
		Vpv            float64 `json:"vpv"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one storage device.
func (st *StorageService) Energy(deviceSN string) (*StorageEnergy, error) {
	sn, err := resolveSN("storage.energy", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	out := new(StorageEnergy)
	if err := st.s.postInto("storage.energy", "device/storage/storage_last_data",
		url.Values{"storage_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	if err := requireField("storage.energy", "device_sn", out.DeviceSN); err != nil {
		return nil, err
	}
	return out, nil
}

// StorageEnergySample is one historical telemetry row of a storage device.
type StorageEnergySample struct {
	Time           string  `json:"time"`
	CalendarTime   int64   `json:"calendarTime"`
	Capacity       float64 `json:"capacity"`
	ChargeToday    float64 `json:"chargeToday"`
	DischargeToday float64 `json:"dischargeToday"`
	EpvToday       float64 `json:"epvToday"`
	OutPutPower    float64 `json:"outPutPower"`
	PCharge        float64 `json:"pCharge"`
	PDischarge     float64 `json:"pDischarge"`
	Ppv            float64 `json:"ppv"`
	Status         int     `json:"status"`
	VBat           float64 `json:"vBat"`
}

// StorageEnergyHistory is the device/storage/storage_data response payload.
type StorageEnergyHistory struct {
	Data struct {
		Count      int                   `json:"count"`
		StorageSN  string                `json:"storage_sn"`
		Datas      []StorageEnergySample `json:"datas"`
		NextPageSN string                `json:"next_page_start_id"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (st *StorageService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*StorageEnergyHistory, error) {
	sn, err := resolveSN("storage.energy_history", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("storage.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"storage_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(StorageEnergyHistory)
	if err := st.s.postInto("storage.energy_history", "device/storage/storage_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alarms returns the alarms of one storage device for a day (defaults to
// today).
func (st *StorageService) Alarms(deviceSN string, day time.Time, page Pagination) (*AlarmList, error) {
	sn, err := resolveSN("storage.alarms", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = time.Now()
	}
	form := url.Values{
		"storage_sn": {sn},
		"date":       {day.Format(dateFormat)},
	}
	page.apply(form)
	return st.s.alarmsInto("storage.alarms", "device/storage/alarm_data", form, false, "sn")
}

// SettingRead reads a named parameter or register range from one storage
// device.
func (st *StorageService) SettingRead(deviceSN string, target SettingTarget) (*SettingResponse, error) {
	sn, err := resolveSN("storage.setting_read", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	form, err := target.form("storage.setting_read", sn)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := st.s.postIntoStrict("storage.setting_read", "readStorageParam", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettingWrite writes a named parameter (or a raw register via set_any_reg)
// on one storage device. The storage set endpoint takes at most four
// values, passed as param1..param4.
func (st *StorageService) SettingWrite(deviceSN, paramID string, values ...string) (*SettingResponse, error) {
	sn, err := resolveSN("storage.setting_write", deviceSN, st.bound)
	if err != nil {
		return nil, err
	}
	form, err := settingWriteForm("storage.setting_write", "storage_sn", sn, "type", paramID, values, paramKey, 4)
	if err != nil {
		return nil, err
	}
	out := new(SettingResponse)
	if err := st.s.postIntoStrict("storage.setting_write", "storageSet", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
