package growatt

import (
	"fmt"
	"net/url"
	"strconv"
)

// setAnyReg is the vendor's escape hatch for writing a raw holding
// register instead of a named parameter.
const setAnyReg = "set_any_reg"

// SettingTarget selects what a setting read addresses: a named parameter ID
// from the vendor docs, or a raw register range. Exactly one mode applies.
type SettingTarget struct {
	paramID   string
	startAddr int
	endAddr   int
	registers bool
}

// NamedParam reads a documented parameter by its ID.
func NamedParam(id string) SettingTarget {
	return SettingTarget{paramID: id}
}

// RegisterRange reads raw holding registers [start, end].
func RegisterRange(start, end int) SettingTarget {
	return SettingTarget{startAddr: start, endAddr: end, registers: true}
}

// form serializes the read target the way the readXxxParam endpoints
// document: named mode sends the ID with zero addresses, register mode
// sends set_any_reg with the range.
func (t SettingTarget) form(op, sn string) (url.Values, error) {
	if sn == "" {
		return nil, &ValidationError{Op: op, Reason: "device serial number required"}
	}
	if !t.registers && t.paramID == "" {
		return nil, &ValidationError{Op: op, Reason: "specify either a parameter ID or a register range"}
	}
	paramID := t.paramID
	start, end := t.startAddr, t.endAddr
	if t.registers {
		paramID = setAnyReg
	}
	return url.Values{
		"device_sn": {sn},
		"paramId":   {paramID},
		"startAddr": {strconv.Itoa(start)},
		"endAddr":   {strconv.Itoa(end)},
	}, nil
}

// SettingResponse is the shared payload of the setting read and write
// endpoints: data carries the read-back value (as a string) or is empty on
// writes.
type SettingResponse struct {
	Data      string `json:"data"`
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// settingWriteForm builds the form body of the per-family set endpoints:
// the serial under snKey, the parameter ID under idKey, and the values
// padded with empty strings up to maxValues (the API docs require passing
// "" for unused slots). For set_any_reg exactly two values are allowed:
// register address and new value.
func settingWriteForm(op, snKey, sn, idKey, paramID string, values []string, valueKey func(i int) string, maxValues int) (url.Values, error) {
	if sn == "" {
		return nil, &ValidationError{Op: op, Reason: "device serial number required"}
	}
	if paramID == "" {
		return nil, &ValidationError{Op: op, Reason: "parameter ID required"}
	}
	if len(values) == 0 {
		return nil, &ValidationError{Op: op, Reason: "parameter value required"}
	}
	if len(values) > maxValues {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("at most %d parameter values supported", maxValues)}
	}
	if paramID == setAnyReg && len(values) != 2 {
		return nil, &ValidationError{Op: op, Reason: "set_any_reg takes exactly a register address and a value"}
	}

	form := url.Values{
		snKey: {sn},
		idKey: {paramID},
	}
	for i := 1; i <= maxValues; i++ {
		v := ""
		if i <= len(values) {
			v = values[i-1]
		}
		form.Set(valueKey(i), v)
	}
	return form, nil
}

func paramKey(i int) string   { return "param" + strconv.Itoa(i) }
func commandKey(i int) string { return "command_" + strconv.Itoa(i) }
