package growatt

import "time"

// WitService covers the WIT commercial storage family (type-info code
// 218), which is only reachable through the v4 endpoint generation.
type WitService struct {
	v4    *V4Service
	bound string
}

// Bind returns a copy of the service with a fixed serial number.
func (w *WitService) Bind(deviceSN string) *WitService {
	c := *w
	c.bound = deviceSN
	return &c
}

// Details returns the basic information of one WIT unit.
func (w *WitService) Details(deviceSN string) (*V4Details, error) {
	sn, err := resolveSN("wit.details", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.Details(DeviceTypeWit, sn)
}

// Energy returns the latest telemetry of one WIT unit.
func (w *WitService) Energy(deviceSN string) (*V4Energy, error) {
	sn, err := resolveSN("wit.energy", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.Energy(DeviceTypeWit, sn)
}

// EnergyHistory returns one day of telemetry of one WIT unit.
func (w *WitService) EnergyHistory(deviceSN string, day time.Time) (*V4EnergyHistory, error) {
	sn, err := resolveSN("wit.energy_history", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.EnergyHistory(DeviceTypeWit, sn, day)
}

// EnergyHistoryMultiple returns one day of telemetry of up to 100 WIT
// units.
func (w *WitService) EnergyHistoryMultiple(day time.Time, deviceSNs ...string) (*V4EnergyHistory, error) {
	return w.v4.EnergyHistoryMultiple(DeviceTypeWit, day, deviceSNs...)
}

// SettingWriteOnOff powers one WIT unit on or off.
func (w *WitService) SettingWriteOnOff(deviceSN string, powerOn bool) (*V4SettingResponse, error) {
	sn, err := resolveSN("wit.setting_write_on_off", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.SettingWriteOnOff(DeviceTypeWit, sn, powerOn)
}

// SettingWriteActivePower sets the active power output limit of one WIT
// unit as a percentage of nominal power.
func (w *WitService) SettingWriteActivePower(deviceSN string, percent int) (*V4SettingResponse, error) {
	sn, err := resolveSN("wit.setting_write_active_power", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.SettingWriteActivePower(DeviceTypeWit, sn, percent)
}

// SettingReadVppParam reads one VPP parameter from one WIT unit.
func (w *WitService) SettingReadVppParam(deviceSN, paramID string) (*V4SettingResponse, error) {
	sn, err := resolveSN("wit.setting_read_vpp_param", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.SettingReadVppParam(DeviceTypeWit, sn, paramID)
}

// SettingWriteVppParam writes one VPP parameter on one WIT unit.
func (w *WitService) SettingWriteVppParam(deviceSN, paramID, value string) (*V4SettingResponse, error) {
	sn, err := resolveSN("wit.setting_write_vpp_param", deviceSN, w.bound)
	if err != nil {
		return nil, err
	}
	return w.v4.SettingWriteVppParam(DeviceTypeWit, sn, paramID, value)
}
