package growatt

import (
	"net/url"
	"strconv"
	"time"
)

// PlantService covers the plant endpoints: listing, basic information,
// energy overview and history, and power curves.
type PlantService struct {
	s *session
}

// Plant is one power station as returned by the plant list.
type Plant struct {
	PlantID      int     `json:"plant_id"`
	Name         string  `json:"name"`
	UserID       int     `json:"user_id"`
	Status       int     `json:"status"`
	Locale       string  `json:"locale"`
	Country      string  `json:"country"`
	City         string  `json:"city"`
	CreateDate   string  `json:"create_date"`
	ImageURL     string  `json:"image_url"`
	Operator     string  `json:"operator"`
	Installer    string  `json:"installer"`
	Longitude    string  `json:"longitude"`
	Latitude     string  `json:"latitude"`
	LatitudeD    string  `json:"latitude_d"`
	LatitudeF    string  `json:"latitude_f"`
	PeakPower    float64 `json:"peak_power"`
	CurrentPower string  `json:"current_power"`
	TotalEnergy  float64 `json:"total_energy"`
}

// PlantList is the plant/list response payload.
type PlantList struct {
	Data struct {
		Count  int     `json:"count"`
		Plants []Plant `json:"plants"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// PlantListOptions narrows a plant listing.
type PlantListOptions struct {
	Pagination
	SearchType    string
	SearchKeyword string
}

// List returns the plants of the token's account.
//
// Vendor rate limit: once every 5 minutes, and at most 10 calls per day;
// responses are served from the client cache inside the TTL window.
func (p *PlantService) List(opts *PlantListOptions) (*PlantList, error) {
	params := url.Values{}
	if opts != nil {
		opts.Pagination.apply(params)
		setOptString(params, "search_type", opts.SearchType)
		setOptString(params, "search_keyword", opts.SearchKeyword)
	}
	body, err := p.s.getV1Cached("plant/list", params)
	if err != nil {
		return nil, err
	}
	out := new(PlantList)
	if err := decodeStrict("plant.list", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns the plants owned by one end user of the account.
func (p *PlantService) ListByUser(username string, page Pagination) (*PlantList, error) {
	if username == "" {
		return nil, &ValidationError{Op: "plant.list_by_user", Reason: "username required"}
	}
	params := url.Values{"user_name": {username}}
	page.apply(params)
	body, err := p.s.getV1Cached("plant/user_plant_list", params)
	if err != nil {
		return nil, err
	}
	out := new(PlantList)
	if err := decodeStrict("plant.list_by_user", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlantDetails is the plant/details response payload. The vendor's details
// record is much wider (installer contacts, array geometry, sensors);
// only the commonly populated fields are mapped and the rest is ignored.
type PlantDetails struct {
	Data struct {
		Name       string  `json:"name"`
		UserID     int     `json:"user_id"`
		City       string  `json:"city"`
		Country    string  `json:"country"`
		Timezone   string  `json:"timezone"`
		CreateDate string  `json:"create_date"`
		Longitude  string  `json:"longitude"`
		Latitude   string  `json:"latitude"`
		Locale     string  `json:"locale"`
		Currency   string  `json:"currency"`
		PeakPower  float64 `json:"peak_power"`
		Inverters  []struct {
			InverterNum int    `json:"inverter_num"`
			InverterMan string `json:"inverter_man"`
			InverterMd  string `json:"inverter_md"`
		} `json:"inverters"`
		Dataloggers []struct {
			DataloggerNum int    `json:"datalogger_num"`
			DataloggerMan string `json:"datalogger_man"`
			DataloggerMd  string `json:"datalogger_md"`
		} `json:"dataloggers"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Details returns basic information about one plant.
func (p *PlantService) Details(plantID int) (*PlantDetails, error) {
	body, err := p.s.getV1Cached("plant/details", url.Values{"plant_id": {strconv.Itoa(plantID)}})
	if err != nil {
		return nil, err
	}
	out := new(PlantDetails)
	if err := decodePartial("plant.details", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlantEnergyOverview is the plant/data response payload.
type PlantEnergyOverview struct {
	Data struct {
		PeakPowerActual float64 `json:"peak_power_actual"`
		MonthlyEnergy   string  `json:"monthly_energy"`
		LastUpdateTime  string  `json:"last_update_time"`
		CurrentPower    float64 `json:"current_power"`
		Timezone        string  `json:"timezone"`
		YearlyEnergy    string  `json:"yearly_energy"`
		TodayEnergy     string  `json:"today_energy"`
		CarbonOffset    string  `json:"carbon_offset"`
		Efficiency      string  `json:"efficiency"`
		TotalEnergy     string  `json:"total_energy"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyOverview returns the current production summary of one plant.
func (p *PlantService) EnergyOverview(plantID int) (*PlantEnergyOverview, error) {
	body, err := p.s.getV1Cached("plant/data", url.Values{"plant_id": {strconv.Itoa(plantID)}})
	if err != nil {
		return nil, err
	}
	out := new(PlantEnergyOverview)
	if err := decodeStrict("plant.energy_overview", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DateInterval selects the aggregation unit of plant energy history.
type DateInterval string

const (
	IntervalDay   DateInterval = "day"
	IntervalMonth DateInterval = "month"
	IntervalYear  DateInterval = "year"
)

// PlantEnergyHistory is the plant/energy response payload. Months are
// reported as YYYY-MM-01 and years as YYYY-01-01 so the dates stay
// parseable.
type PlantEnergyHistory struct {
	Data struct {
		Count    int    `json:"count"`
		TimeUnit string `json:"time_unit"`
		Energys  []struct {
			Date   string `json:"date"`
			Energy string `json:"energy"`
		} `json:"energys"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// EnergyHistory returns per-day, per-month or per-year production of one
// plant. The vendor limits the window per aggregation unit: 7 days in day
// mode, same or previous year in month mode, 20 years in year mode.
func (p *PlantService) EnergyHistory(plantID int, r DateRange, interval DateInterval, page Pagination) (*PlantEnergyHistory, error) {
	if interval == "" {
		interval = IntervalDay
	}
	var err error
	if r, err = checkPlantEnergyRange("plant.energy_history", r, interval); err != nil {
		return nil, err
	}
	params := url.Values{
		"plant_id":  {strconv.Itoa(plantID)},
		"time_unit": {string(interval)},
	}
	r.apply(params)
	page.apply(params)
	body, err := p.s.getV1("plant/energy", params)
	if err != nil {
		return nil, err
	}
	out := new(PlantEnergyHistory)
	if err := decodeStrict("plant.energy_history", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlantPower is the plant/power response payload: one day of power samples
// in 5-minute intervals.
type PlantPower struct {
	Data struct {
		Count  int `json:"count"`
		Powers []struct {
			Time  string  `json:"time"`
			Power float64 `json:"power"`
		} `json:"powers"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Power returns the power curve of one plant for a day (defaults to today).
func (p *PlantService) Power(plantID int, day time.Time) (*PlantPower, error) {
	if day.IsZero() {
		day = time.Now()
	}
	params := url.Values{
		"plant_id": {strconv.Itoa(plantID)},
		"date":     {day.Format(dateFormat)},
	}
	body, err := p.s.getV1Cached("plant/power", params)
	if err != nil {
		return nil, err
	}
	out := new(PlantPower)
	if err := decodeStrict("plant.power", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlantInfo is the plant/sn_plant response payload: the owning plant,
// wrapped one level deeper than the plant list rows.
type PlantInfo struct {
	Data struct {
		Plant Plant `json:"plant"`
	} `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// ByDevice returns the plant a device serial belongs to.
func (p *PlantService) ByDevice(deviceSN string) (*PlantInfo, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "plant.by_device", Reason: "device serial number required"}
	}
	body, err := p.s.postV1Cached("plant/sn_plant", url.Values{"device_sn": {deviceSN}})
	if err != nil {
		return nil, err
	}
	out := new(PlantInfo)
	if err := decodeStrict("plant.by_device", body, out); err != nil {
		return nil, err
	}
	return out, nil
}
