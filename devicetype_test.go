package growatt

import "testing"

func TestDeviceTypeFromTypeInfo(t *testing.T) {
	tests := []struct {
		code int
		want DeviceType
	}{
		{0, DeviceTypeOther},
		{16, DeviceTypeInverter},
		{17, DeviceTypeSph},
		{18, DeviceTypeMax},
		{19, DeviceTypeSpa},
		{22, DeviceTypeMin},
		{81, DeviceTypePcs},
		{82, DeviceTypeHps},
		{83, DeviceTypePbd},
		{96, DeviceTypeStorage},
		{218, DeviceTypeWit},
		{260, DeviceTypeSphs},
	}
	for _, tt := range tests {
		got, ok := DeviceTypeFromTypeInfo(tt.code)
		if !ok {
			t.Errorf("DeviceTypeFromTypeInfo(%d) not found", tt.code)
			continue
		}
		if got != tt.want {
			t.Errorf("DeviceTypeFromTypeInfo(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}

	if _, ok := DeviceTypeFromTypeInfo(999); ok {
		t.Error("DeviceTypeFromTypeInfo(999) found, want miss")
	}
}

func TestDeviceTypeFromDeviceList(t *testing.T) {
	tests := []struct {
		code int
		want DeviceType
	}{
		{1, DeviceTypeInverter},
		{2, DeviceTypeStorage},
		{3, DeviceTypeOther},
		{4, DeviceTypeMax},
		{5, DeviceTypeSph},
		{6, DeviceTypeSpa},
		{7, DeviceTypeMin},
		{8, DeviceTypePcs},
		{9, DeviceTypeHps},
		{10, DeviceTypePbd},
		{11, DeviceTypeGroBoost},
	}
	for _, tt := range tests {
		got, ok := DeviceTypeFromDeviceList(tt.code)
		if !ok {
			t.Errorf("DeviceTypeFromDeviceList(%d) not found", tt.code)
			continue
		}
		if got != tt.want {
			t.Errorf("DeviceTypeFromDeviceList(%d) = %s, want %s", tt.code, got, tt.want)
		}
	}

	if _, ok := DeviceTypeFromDeviceList(42); ok {
		t.Error("DeviceTypeFromDeviceList(42) found, want miss")
	}
}

func TestDeviceTypeFromV4List(t *testing.T) {
	for s, want := range map[string]DeviceType{
		"inv":   DeviceTypeInverter,
		"min":   DeviceTypeMin,
		"sph-s": DeviceTypeSphs,
		"noah":  DeviceTypeNoah,
	} {
		got, ok := DeviceTypeFromV4List(s)
		if !ok || got != want {
			t.Errorf("DeviceTypeFromV4List(%q) = %s, %v; want %s", s, got, ok, want)
		}
	}
	if _, ok := DeviceTypeFromV4List("fridge"); ok {
		t.Error("DeviceTypeFromV4List(fridge) found, want miss")
	}
}
