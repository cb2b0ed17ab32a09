package growatt

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// VppService covers the VPP battery control endpoints, available for the
// MIN, SPA and SPH families.
type VppService struct {
	s *session
}

// VppSoc is the device/vpp/getSocData response payload.
type VppSoc struct {
	Soc          float64 `json:"soc"`
	DataloggerSN string  `json:"datalogger_sn"`
	DeviceSN     string  `json:"device_sn"`
	ErrorCode    int     `json:"error_code"`
	ErrorMsg     string  `json:"error_msg"`
}

// Soc returns the current battery state of charge of one VPP device.
func (v *VppService) Soc(deviceSN string) (*VppSoc, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "vpp.soc", Reason: "device serial number required"}
	}
	out := new(VppSoc)
	if err := v.s.postIntoStrict("vpp.soc", "device/vpp/getSocData",
		url.Values{"vppSn": {deviceSN}}, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// VppWrite is the shared payload of the VPP write endpoints.
type VppWrite struct {
	Data      int    `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Write commands an immediate charge (positive percentage) or discharge
// (negative percentage) for the given duration in minutes, at most 24
// hours. Percentage ranges -100 to 100.
func (v *VppService) Write(deviceSN string, minutes, percentage int) (*VppWrite, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "vpp.write", Reason: "device serial number required"}
	}
	if minutes < 0 || minutes > 24*60 {
		return nil, &ValidationError{Op: "vpp.write", Reason: "time must be within 0 and 1440 minutes"}
	}
	if percentage < -100 || percentage > 100 {
		return nil, &ValidationError{Op: "vpp.write", Reason: "percentage must be between -100 and 100"}
	}
	form := url.Values{
		"vppSn":      {deviceSN},
		"time":       {strconv.Itoa(minutes)},
		"percentage": {strconv.Itoa(percentage)},
	}
	out := new(VppWrite)
	if err := v.s.postIntoStrict("vpp.write", "vppRemoteSetNew", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}

// VppSchedule is one charge/discharge time window: positive percentage
// charges, negative discharges. Start and End are minutes since midnight.
type VppSchedule struct {
	Percentage int `json:"percentage"`
	Start      int `json:"startTime"`
	End        int `json:"endTime"`
}

// WriteMultiple programs a set of charge/discharge windows. Each window
// must end after it starts and stay within one day.
func (v *VppService) WriteMultiple(deviceSN string, schedules []VppSchedule) (*VppWrite, error) {
	if deviceSN == "" {
		return nil, &ValidationError{Op: "vpp.write_multiple", Reason: "device serial number required"}
	}
	if len(schedules) == 0 {
		return nil, &ValidationError{Op: "vpp.write_multiple", Reason: "at least one schedule required"}
	}
	for i, sc := range schedules {
		if sc.Percentage < -100 || sc.Percentage > 100 {
			return nil, &ValidationError{Op: "vpp.write_multiple",
				Reason: fmt.Sprintf("schedule %d: percentage must be between -100 and 100", i)}
		}
		if sc.Start < 0 || sc.End > 24*60 || sc.End <= sc.Start {
			return nil, &ValidationError{Op: "vpp.write_multiple",
				Reason: fmt.Sprintf("schedule %d: end time must be after start time and within one day", i)}
		}
	}
	periods, err := json.Marshal(schedules)
	if err != nil {
		return nil, &ValidationError{Op: "vpp.write_multiple", Reason: "failed to encode schedules", Err: err}
	}
	form := url.Values{
		"vppSn":       {deviceSN},
		"timePeriods": {string(periods)},
	}
	out := new(VppWrite)
	if err := v.s.postIntoStrict("vpp.write_multiple", "vppSetNew", form, false, out); err != nil {
		return nil, err
	}
	return out, nil
}
