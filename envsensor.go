package growatt

import (
	"net/url"
	"strconv"
)

// EnvSensorService covers the environmental testers attached behind a
// datalogger. Sensors are addressed by datalogger serial plus bus address;
// discovery goes through DataloggerService.ListEnvSensors.
type EnvSensorService struct {
	s *session
}

// EnvSensorMetrics is the device/env/env_last_data response payload.
type EnvSensorMetrics struct {
	Data struct {
		AirPressure    float64 `json:"airPressure"`
		AirTemperature float64 `json:"envTemp"`
		CalendarTime   int64   `json:"calendarTime"`
		Humidity       float64 `json:"envHumidity"`
		Irradiation    float64 `json:"radiant"`
		PanelTemp      float64 `json:"panelTemp"`
		Rainfall       float64 `json:"rainfall"`
		Time           string  `json:"time"`
		WindAngle      float64 `json:"windAngle"`
		WindSpeed      float64 `json:"windSpeed"`
	} `json:"data"`
	DataloggerSN string `json:"datalogger_sn"`
	ErrorCode    int    `json:"error_code"`
	ErrorMsg     string `json:"error_msg"`
}

// Metrics returns the latest reading of the sensor at the given bus
// address.
func (e *EnvSensorService) Metrics(dataloggerSN string, address int) (*EnvSensorMetrics, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "env_sensor.metrics", Reason: "datalogger serial number required"}
	}
	form := url.Values{
		"datalog_sn": {dataloggerSN},
		"address":    {strconv.Itoa(address)},
	}
	out := new(EnvSensorMetrics)
	if err := e.s.postInto("env_sensor.metrics", "device/env/env_last_data", form, true, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnvSensorMetricsSample is one historical reading of an environmental
// sensor.
type EnvSensorMetricsSample struct {
	Time           string  `json:"time"`
	CalendarTime   int64   `json:"calendarTime"`
	AirTemperature float64 `json:"envTemp"`
	Humidity       float64 `json:"envHumidity"`
	Irradiation    float64 `json:"radiant"`
	PanelTemp      float64 `json:"panelTemp"`
	WindAngle      float64 `json:"windAngle"`
	WindSpeed      float64 `json:"windSpeed"`
}

// EnvSensorMetricsHistory is the device/env/env_data response payload.
type EnvSensorMetricsHistory struct {
	Data struct {
		Count     int                      `json:"count"`
		DatalogSN string                   `json:"datalog_sn"`
		EnvDatas  []EnvSensorMetricsSample `json:"env_datas"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// MetricsHistory returns historical readings of one sensor within a window
// of at most 7 days.
func (e *EnvSensorService) MetricsHistory(dataloggerSN string, address int, r DateRange, page Pagination) (*EnvSensorMetricsHistory, error) {
	if dataloggerSN == "" {
		return nil, &ValidationError{Op: "env_sensor.metrics_history", Reason: "datalogger serial number required"}
	}
	r, err := checkHistoryRange("env_sensor.metrics_history", r)
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"datalog_sn": {dataloggerSN},
		"address":    {strconv.Itoa(address)},
	}
	r.apply(form)
	page.apply(form)
	out := new(EnvSensorMetricsHistory)
	if err := e.s.postInto("env_sensor.metrics_history", "device/env/env_data", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
