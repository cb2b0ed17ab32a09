package growatt

import (
	"errors"
	"testing"
)

func TestSettingTargetForm(t *testing.T) {
	form, err := NamedParam("pv_on_off").form("op", "SN1")
	if err != nil {
		t.Fatalf("form() error = %v", err)
	}
	if form.Get("paramId") != "pv_on_off" || form.Get("startAddr") != "0" || form.Get("endAddr") != "0" {
		t.Errorf("named form = %v", form)
	}

	form, err = RegisterRange(3, 5).form("op", "SN1")
	if err != nil {
		t.Fatalf("form() error = %v", err)
	}
	if form.Get("paramId") != setAnyReg || form.Get("startAddr") != "3" || form.Get("endAddr") != "5" {
		t.Errorf("register form = %v", form)
	}

	var verr *ValidationError
	if _, err := NamedParam("").form("op", "SN1"); !errors.As(err, &verr) {
		t.Errorf("empty target error = %v, want *ValidationError", err)
	}
	if _, err := NamedParam("x").form("op", ""); !errors.As(err, &verr) {
		t.Errorf("missing serial error = %v, want *ValidationError", err)
	}
}

func TestSettingWriteFormPadsUnusedSlots(t *testing.T) {
	form, err := settingWriteForm("op", "tlx_sn", "SN1", "type", "backflow_setting", []string{"1", "50"}, paramKey, 19)
	if err != nil {
		t.Fatalf("settingWriteForm() error = %v", err)
	}
	if form.Get("tlx_sn") != "SN1" || form.Get("type") != "backflow_setting" {
		t.Errorf("identity fields = %v", form)
	}
	if form.Get("param1") != "1" || form.Get("param2") != "50" {
		t.Errorf("value slots = %v", form)
	}
	for i := 3; i <= 19; i++ {
		if v, ok := form[paramKey(i)]; !ok || v[0] != "" {
			t.Errorf("%s = %v, want present and empty", paramKey(i), v)
		}
	}
	if _, ok := form[paramKey(20)]; ok {
		t.Error("param20 present, want at most 19 slots")
	}
}

func TestSettingWriteFormCommandKeys(t *testing.T) {
	form, err := settingWriteForm("op", "device_sn", "SN1", "paramId", "pf_sys_year", []string{"2026-08-25 12:00:00"}, commandKey, 2)
	if err != nil {
		t.Fatalf("settingWriteForm() error = %v", err)
	}
	if form.Get("command_1") != "2026-08-25 12:00:00" || form.Get("command_2") != "" {
		t.Errorf("command slots = %v", form)
	}
}

func TestSettingWriteFormValidation(t *testing.T) {
	cases := []struct {
		name   string
		sn     string
		param  string
		values []string
		max    int
	}{
		{"missing serial", "", "x", []string{"1"}, 4},
		{"missing param", "SN1", "", []string{"1"}, 4},
		{"no values", "SN1", "x", nil, 4},
		{"too many values", "SN1", "x", []string{"1", "2", "3"}, 2},
		{"set_any_reg one value", "SN1", setAnyReg, []string{"1"}, 4},
		{"set_any_reg three values", "SN1", setAnyReg, []string{"1", "2", "3"}, 4},
	}
	for _, tt := range cases {
		_, err := settingWriteForm("op", "device_sn", tt.sn, "paramId", tt.param, tt.values, paramKey, tt.max)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: error = %v, want *ValidationError", tt.name, err)
		}
	}

	form, err := settingWriteForm("op", "device_sn", "SN1", "paramId", setAnyReg, []string{"100", "1"}, paramKey, 4)
	if err != nil {
		t.Fatalf("set_any_reg with two values error = %v", err)
	}
	if form.Get("param1") != "100" || form.Get("param2") != "1" {
		t.Errorf("set_any_reg slots = %v", form)
	}
}
