package growatt

import "time"

// NoahService covers the NOAH balcony storage family, which is only
// reachable through the v4 endpoint generation.
type NoahService struct {
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (n *NoahService) Bind(deviceSN string) *NoahService {
	c := *n
	c.bound = deviceSN
	return &c
}

// Details returns the basic information of one NOAH unit.
func (n *NoahService) Details(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("noah.details", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.Details(DeviceTypeNoah, sn)
}

// Energy returns the latest telemetry of one NOAH unit.
func (n *NoahService) Energy(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("noah.energy", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.Energy(DeviceTypeNoah, sn)
}

// EnergyHistory returns one day of telemetry of one NOAH unit.
func (n *NoahService) EnergyHistory(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("noah.energy_history", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.EnergyHistory(DeviceTypeNoah, sn, day)
}

// EnergyHistoryMultiple returns one day of telemetry of up to 100 NOAH
// units.
func (n *NoahService) EnergyHistoryMultiple(day time.Time, deviceSNs ...string) (*V4EnergyHistory, error) {
	return n.v4.EnergyHistoryMultiple(DeviceTypeNoah, day, deviceSNs...)
}

// SettingWriteActivePower sets the output power limit of one NOAH unit as
// a percentage of nominal power.
func (n *NoahService) SettingWriteActivePower(deviceSN string, percent int) (*V4SettingResponse, error) {
	sn, err := resolveSN("noah.setting_write_active_power", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.SettingWriteActivePower(DeviceTypeNoah, sn, percent)
}

// SettingWriteSocUpperLimit sets the charge stop SOC of one NOAH unit.
func (n *NoahService) SettingWriteSocUpperLimit(deviceSN string, percent int) (*V4SettingResponse, error) {
	sn, err := resolveSN("noah.setting_write_soc_upper_limit", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.SettingWriteSocUpperLimit(DeviceTypeNoah, sn, percent)
}

// SettingWriteSocLowerLimit sets the discharge stop SOC of one NOAH unit.
func (n *NoahService) SettingWriteSocLowerLimit(deviceSN string, percent int) (*V4SettingResponse, error) {
	sn, err := resolveSN("noah.setting_write_soc_lower_limit", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.SettingWriteSocLowerLimit(DeviceTypeNoah, sn, percent)
}

// SettingWriteTimePeriod programs one output schedule slot of one NOAH
// unit.
func (n *NoahService) SettingWriteTimePeriod(deviceSN string, tp V4TimePeriod) (*V4SettingResponse, error) {
	sn, err := resolveSN("noah.setting_write_time_period", deviceSN, n.bound)
	if err != nil {
		return nil, err
	}
	return n.v4.SettingWriteTimePeriod(DeviceTypeNoah, sn, tp)
}
