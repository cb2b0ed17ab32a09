package growatt

import "time"

// SphsService covers the SPH-S hybrid family (type-info code 260), which
// is only reachable through the v4 endpoint generation.
type SphsService struct {
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (s *SphsService) Bind(deviceSN string) *SphsService {
	c := *s
	c.bound = deviceSN
	return &c
}

// Details returns the basic information of one SPH-S hybrid.
func (s *SphsService) Details(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("sphs.details", deviceSN, s.bound)
	if err != nil {
		return nil, err
	}
	return s.v4.Details(DeviceTypeSphs, sn)
}

// Energy returns the latest telemetry of one SPH-S hybrid.
func (s *SphsService) Energy(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("sphs.energy", deviceSN, s.bound)
	if err != nil {
		return nil, err
	}
	return s.v4.Energy(DeviceTypeSphs, sn)
}

// EnergyHistory returns one day of telemetry of one SPH-S hybrid.
func (s *SphsService) EnergyHistory(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("sphs.energy_history", deviceSN, s.bound)
	if err != nil {
		return nil, err
	}
	return s.v4.EnergyHistory(DeviceTypeSphs, sn, day)
}

// EnergyHistoryMultiple returns one day of telemetry of up to 100 SPH-S
// hybrids.
func (s *SphsService) EnergyHistoryMultiple(day time.Time, deviceSNs ...string) (*V4EnergyHistory, error) {
	return s.v4.EnergyHistoryMultiple(DeviceTypeSphs, day, deviceSNs...)
}

// SettingWriteOnOff powers one SPH-S hybrid on or off.
func (s *SphsService) SettingWriteOnOff(deviceSN string, powerOn bool) (*V4SettingResponse, error) {
	sn, err := resolveSN("sphs.setting_write_on_off", deviceSN, s.bound)
	if err != nil {
		return nil, err
	}
	return s.v4.SettingWriteOnOff(DeviceTypeSphs, sn, powerOn)
}

// SettingWriteActivePower sets the active power output limit of one SPH-S
// hybrid as a percentage of nominal power.
func (s *SphsService) SettingWriteActivePower(deviceSN string, percent int) (*V4SettingResponse, error) {
	sn, err := resolveSN("sphs.setting_write_active_power", deviceSN, s.bound)
	if err != nil {
		return nil, err
	}
	return s.v4.SettingWriteActivePower(DeviceTypeSphs, sn, percent)
}
