package growatt

// DeviceType identifies a Growatt device family. The string values match the
// device_type strings returned by the v4 device list.
type DeviceType string

const (
	DeviceTypeInverter DeviceType = "inv"
	DeviceTypeStorage  DeviceType = "storage"
	DeviceTypeMax      DeviceType = "max"
	DeviceTypeSph      DeviceType = "sph"
	DeviceTypeSpa      DeviceType = "spa"
	DeviceTypeMin      DeviceType = "min"
	DeviceTypeWit      DeviceType = "wit"
	DeviceTypeSphs     DeviceType = "sph-s"
	DeviceTypeNoah     DeviceType = "noah"
	DeviceTypePcs      DeviceType = "pcs"
	DeviceTypeHps      DeviceType = "hps"
	DeviceTypePbd      DeviceType = "pbd"
	DeviceTypeGroBoost DeviceType = "groboost"
	DeviceTypeOther    DeviceType = "other"
)

// typeInfoCodes maps the device_type codes returned by device/check/sn.
// Code 0 covers dataloggers and devices not in the system.
var typeInfoCodes = map[int]DeviceType{
	0:   DeviceTypeOther,
	16:  DeviceTypeInverter,
	17:  DeviceTypeSph,
	18:  DeviceTypeMax,
	19:  DeviceTypeSpa,
	22:  DeviceTypeMin,
	81:  DeviceTypePcs,
	82:  DeviceTypeHps,
	83:  DeviceTypePbd,
	96:  DeviceTypeStorage,
	218: DeviceTypeWit,
	260: DeviceTypeSphs,
}

// deviceListCodes maps the numeric type returned by the per-plant device
// list. Type 3 covers dataloggers, smart meters and environmental sensors.
var deviceListCodes = map[int]DeviceType{
	1:  DeviceTypeInverter,
	2:  DeviceTypeStorage,
	3:  DeviceTypeOther,
	4:  DeviceTypeMax,
	5:  DeviceTypeSph,
	6:  DeviceTypeSpa,
	7:  DeviceTypeMin,
	8:  DeviceTypePcs,
	9:  DeviceTypeHps,
	10: DeviceTypePbd,
	11: DeviceTypeGroBoost,
}

// v4ListTypes are the device_type strings the v4 device list may return.
var v4ListTypes = map[string]DeviceType{
	"inv":      DeviceTypeInverter,
	"storage":  DeviceTypeStorage,
	"max":      DeviceTypeMax,
	"sph":      DeviceTypeSph,
	"spa":      DeviceTypeSpa,
	"min":      DeviceTypeMin,
	"wit":      DeviceTypeWit,
	"sph-s":    DeviceTypeSphs,
	"noah":     DeviceTypeNoah,
	"groboost": DeviceTypeGroBoost,
}

// DeviceTypeFromTypeInfo maps a device/check/sn type code to its family.
func DeviceTypeFromTypeInfo(code int) (DeviceType, bool) {
	t, ok := typeInfoCodes[code]
	return t, ok
}

// DeviceTypeFromDeviceList maps a plant device-list type code to its family.
func DeviceTypeFromDeviceList(code int) (DeviceType, bool) {
	t, ok := deviceListCodes[code]
	return t, ok
}

// DeviceTypeFromV4List maps a v4 device-list type string to its family.
func DeviceTypeFromV4List(s string) (DeviceType, bool) {
	t, ok := v4ListTypes[s]
	return t, ok
}
