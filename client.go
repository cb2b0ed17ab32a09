// Package growatt is a typed client for the Growatt OpenAPI (v1 and v4
// endpoint generations) covering plants, dataloggers and the per-family
// device endpoints for inverter, storage, max, sph, spa, min, pcs, hps, pbd,
// wit, sph-s, noah, groboost, smart meter and environmental sensor devices.
//
// All calls are synchronous, single round trips. The client keeps a short
// per-instance response cache for the endpoints the vendor rate-limits to
// one request per 5 minutes; it holds no other state. A Client is not safe
// for concurrent use.
package growatt

import (
	"github.com/sirupsen/logrus"
)

// Regional API servers. The token decides which server accepts it.
const (
	DefaultServerURL = "https://openapi.growatt.com"
	ServerURLChina   = "https://openapi-cn.growatt.com"
	ServerURLUS      = "https://openapi-us.growatt.com"
	ServerURLTest    = "https://test.growatt.com"
)

// Config carries client construction parameters. Token is required;
// ServerURL defaults to DefaultServerURL, Logger to the logrus standard
// logger.
type Config struct {
	ServerURL string
	Token     string
	Logger    logrus.FieldLogger
}

// Client is the top-level handle aggregating all endpoint submodules.
type Client struct {
	session *session

	Plant      *PlantService
	Device     *DeviceService
	Datalogger *DataloggerService
	Inverter   *InverterService
	Storage    *StorageService
	Min        *MinService
	Max        *MaxService
	Sph        *SphService
	Spa        *SpaService
	Pcs        *PcsService
	Hps        *HpsService
	Pbd        *PbdService
	Wit        *WitService
	Sphs       *SphsService
	Noah       *NoahService
	GroBoost   *GroBoostService
	SmartMeter *SmartMeterService
	EnvSensor  *EnvSensorService
	Vpp        *VppService
	V4         *V4Service
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := newSession(serverURL, cfg.Token, log)
	v4 := &V4Service{s: s}
	return &Client{
		session:    s,
		Plant:      &PlantService{s: s},
		Device:     &DeviceService{s: s},
		Datalogger: &DataloggerService{s: s},
		Inverter:   &InverterService{s: s},
		Storage:    &StorageService{s: s},
		Min:        &MinService{s: s, v4: v4},
		Max:        &MaxService{s: s, v4: v4},
		Sph:        &SphService{s: s, v4: v4},
		Spa:        &SpaService{s: s, v4: v4},
		Pcs:        &PcsService{s: s},
		Hps:        &HpsService{s: s},
		Pbd:        &PbdService{s: s},
		Wit:        &WitService{v4: v4},
		Sphs:       &SphsService{v4: v4},
		Noah:       &NoahService{v4: v4},
		GroBoost:   &GroBoostService{s: s},
		SmartMeter: &SmartMeterService{s: s},
		EnvSensor:  &EnvSensorService{s: s},
		Vpp:        &VppService{s: s},
		V4:         v4,
	}
}

// DeviceHandle is the result of APIForDevice: the resolved device family
// plus the matching submodule pre-bound to the serial number. Exactly one
// of the submodule fields is non-nil, selected by Type.
type DeviceHandle struct {
	SN   string
	Type DeviceType

	Inverter *InverterService
	Storage  *StorageService
	Min      *MinService
	Max      *MaxService
	Sph      *SphService
	Spa      *SpaService
	Pcs      *PcsService
	Hps      *HpsService
	Pbd      *PbdService
	Wit      *WitService
	Sphs     *SphsService
}

// APIForDevice resolves a serial number's device family through the
// (cached) type-lookup endpoint and returns the matching submodule bound to
// that serial. A type code absent from the registry yields
// *UnknownDeviceTypeError.
func (c *Client) APIForDevice(deviceSN string) (*DeviceHandle, error) {
	info, err := c.Device.TypeInfo(deviceSN)
	if err != nil {
		return nil, err
	}
	t, ok := DeviceTypeFromTypeInfo(info.DeviceType)
	if !ok {
		return nil, &UnknownDeviceTypeError{DeviceSN: deviceSN, Code: info.DeviceType}
	}

	h := &DeviceHandle{SN: deviceSN, Type: t}
	switch t {
	case DeviceTypeInverter:
		h.Inverter = c.Inverter.Bind(deviceSN)
	case DeviceTypeStorage:
		h.Storage = c.Storage.Bind(deviceSN)
	case DeviceTypeMin:
		h.Min = c.Min.Bind(deviceSN)
	case DeviceTypeMax:
		h.Max = c.Max.Bind(deviceSN)
	case DeviceTypeSph:
		h.Sph = c.Sph.Bind(deviceSN)
	case DeviceTypeSpa:
		h.Spa = c.Spa.Bind(deviceSN)
	case DeviceTypePcs:
		h.Pcs = c.Pcs.Bind(deviceSN)
	case DeviceTypeHps:
		h.Hps = c.Hps.Bind(deviceSN)
	case DeviceTypePbd:
		h.Pbd = c.Pbd.Bind(deviceSN)
	case DeviceTypeWit:
		h.Wit = c.Wit.Bind(deviceSN)
	case DeviceTypeSphs:
		h.Sphs = c.Sphs.Bind(deviceSN)
	case DeviceTypeOther:
		// dataloggers, smart meters and sensors have no serial-bound
		// submodule; they are addressed through DataloggerService
	}
	return h, nil
}

// resolveSN picks the explicit serial if given, otherwise the one a
// submodule was bound with.
func resolveSN(op, explicit, bound string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if bound != "" {
		return bound, nil
	}
	return "", &ValidationError{Op: op, Reason: "device serial number required"}
}
