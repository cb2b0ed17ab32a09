package growatt

import (
	"net/url"
)

// GroBoostService covers the GroBoost heating controller family (device
// list type 11).
type GroBoostService struct {
	s     *session
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (g *GroBoostService) Bind(deviceSN string) *GroBoostService {
	c := *g
	c.bound = deviceSN
	return &c
}

// GroBoostDetails is the device/boost/boost_data_info response payload.
type GroBoostDetails struct {
	Data struct {
		Address        int     `json:"address"`
		Alias          string  `json:"alias"`
		DataloggerSN   string  `json:"dataloggerSn"`
		DeviceType     string  `json:"deviceType"`
		FwVersion      string  `json:"fwVersion"`
		GroupID        int     `json:"groupId"`
		ID             int     `json:"id"`
		LastUpdateTime string  `json:"lastUpdateTimeText"`
		Lost           bool    `json:"lost"`
		PlantID        int     `json:"plantId"`
		SerialNum      string  `json:"serialNum"`
		Status         int     `json:"status"`
		TcpServerIP    string  `json:"tcpServerIp"`
		Temp           float64 `json:"temp"`
		UserID         int     `json:"userId"`
		Version        string  `json:"version"`
		WaterState     int     `json:"waterState"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Details returns the basic information of one GroBoost controller.
func (g *GroBoostService) Details(deviceSN string) (*GroBoostDetails, error) {
	sn, err := resolveSN("groboost.details", deviceSN, g.bound)
	if err != nil {
		return nil, err
	}
	out := new(GroBoostDetails)
	if err := g.s.getInto("groboost.details", "device/boost/boost_data_info",
		url.Values{"device_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GroBoostEnergy is the device/boost/boost_last_data response payload.
type GroBoostEnergy struct {
	Data struct {
		CalendarTime     int64   `json:"calendarTime"`
		Current          float64 `json:"current"`
		JobsModel        int     `json:"jobsModel"`
		Power            float64 `json:"power"`
		PowerFactor      float64 `json:"powerFactor"`
		Temp             float64 `json:"temp"`
		Time             string  `json:"time"`
		TotalEnergy      float64 `json:"totalEneny"`
		Voltage          float64 `json:"voltage"`
		WaterHeaterPower float64 `json:"waterHeaterPower"`
		WaterState       int     `json:"waterState"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	DeviceSN     string `json:"device_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Energy returns the latest telemetry of one GroBoost controller.
func (g *GroBoostService) Energy(deviceSN string) (*GroBoostEnergy, error) {
	sn, err := resolveSN("groboost.energy", deviceSN, g.bound)
	if err != nil {
		return nil, err
	}
	out := new(GroBoostEnergy)
	if err := g.s.postInto("groboost.energy", "device/boost/boost_last_data",
		url.Values{"boost_sn": {sn}}, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GroBoostEnergySample is one historical telemetry row of a GroBoost
// controller.
type GroBoostEnergySample struct {
	Time         string  `json:"time"`
	CalendarTime int64   `json:"calendarTime"`
	Current      float64 `json:"current"`
	Power        float64 `json:"power"`
	Temp         float64 `json:"temp"`
	TotalEnergy  float64 `json:"totalEneny"`
	Voltage      float64 `json:"voltage"`
	WaterState   int     `json:"waterState"`
}

// GroBoostEnergyHistory is the device/boost/boost_data response payload.
type GroBoostEnergyHistory struct {
	Data struct {
		Count   int                    `json:"count"`
		BoostSN string                 `json:"boost_sn"`
		Datas   []GroBoostEnergySample `json:"datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns historical telemetry within a window of at most 7
// days.
func (g *GroBoostService) EnergyHistory(deviceSN string, r DateRange, timezone string, page Pagination) (*GroBoostEnergyHistory, error) {
	sn, err := resolveSN("groboost.energy_history", deviceSN, g.bound)
	if err != nil {
		return nil, err
	}
	r, err = checkHistoryRange("groboost.energy_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{"boost_sn": {sn}}
	r.apply(form)
	setOptString(form, "timezone_id", timezone)
	page.apply(form)
	out := new(GroBoostEnergyHistory)
	if err := g.s.postInto("groboost.energy_history", "device/boost/boost_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
