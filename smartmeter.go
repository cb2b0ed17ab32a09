package growatt

import (
	"net/url"
	"strconv"
)

// SmartMeterService covers the smart meters attached behind a datalogger.
// Meters are addressed by datalogger serial plus bus address; discovery
// goes through DataloggerService.ListSmartMeters.
type SmartMeterService struct {
	s *session
}

// SmartMeterEnergy is the device/ammeter/meter_last_data response payload.
type SmartMeterEnergy struct {
	Data struct {
		ActivePower   float64 `json:"activePower"`
		ApparentPower float64 `json:"apparentPower"`
		CalendarTime  int64   `json:"calendarTime"`
		EnergyToday   float64 `json:"energyToday"`
		EnergyTotal   float64 `json:"energyTotal"`
		Frequency     float64 `json:"frequency"`
		PowerFactor   float64 `json:"powerFactor"`
		ReactivePower float64 `json:"reactivePower"`
		ReverseEnergy float64 `json:"reverseEnergyTotal"`
		Time          string  `json:"time"`
		Voltage       float64 `json:"voltage"`
		Current       float64 `json:"current"`
		ForwardEnergy float64 `json:"forwardEnergyTotal"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest reading of the meter at the given bus address.
func (sm *SmartMeterService) Energy(dataloggerSN string, address int) (*SmartMeterEnergy, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "smart_meter.energy", Reason: "datalogger serial number required"}
	}
	form := url.Values{
		"datalog_sn": {dataloggerSN},
		"address":    {strconv.Itoa(address)},
	}
	out := new(SmartMeterEnergy)
	if err := sm.s.postInto("smart_meter.energy", "device/ammeter/meter_last_data", form, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SmartMeterEnergySample is one historical reading of a smart meter.
type SmartMeterEnergySample struct {
	Time          string  `json:"time"`
	CalendarTime  int64   `json:"calendarTime"`
	ActivePower   float64 `json:"activePower"`
	EnergyToday   float64 `json:"energyToday"`
	EnergyTotal   float64 `json:"energyTotal"`
	PowerFactor   float64 `json:"powerFactor"`
	ReactivePower float64 `json:"reactivePower"`
	Voltage       float64 `json:"voltage"`
	Current       float64 `json:"current"`
}

// SmartMeterEnergyHistory is the device/ammeter/meter_data response
// payload.
type SmartMeterEnergyHistory struct {
	Data struct {
		Count      int                      `json:"count"`
		DatalogSN  string                   `json:"datalog_sn"`
		MeterDatas []SmartMeterEnergySample `json:"meter_datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical readings of one meter within a window
// of at most 7 days.
func (sm *SmartMeterService) EnergyHistory(dataloggerSN string, address int, r DateRange, page Pagination) (*SmartMeterEnergyHistory, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "smart_meter.energy_history", Reason: "datalogger serial number required"}
	}
	r, err := checkHistoryRange("smart_meter.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"datalog_sn": {dataloggerSN},
		"address":    {strconv.Itoa(address)},
	}
	r.apply(form)
	page.apply(form)
	out := new(SmartMeterEnergyHistory)
	if err := sm.s.postInto("smart_meter.energy_history", "device/ammeter/meter_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
