package growatt

import "fmt"

// TransportError reports a failure below the vendor API: network errors,
// unexpected HTTP status codes, or a body that is not JSON at all.
type TransportError struct {
	Endpoint string
	Status   int // HTTP status code, 0 when the request never completed
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("growatt: %s: unexpected status code %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("growatt: %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// VendorError is a non-success result code returned by the Growatt API.
// Code and Message are passed through unmodified; Hint carries the generic
// meaning from the vendor's documented error-code table when one exists.
type VendorError struct {
	Endpoint string
	Code     int
	Message  string
	Hint     string
}

func (e *VendorError) Error() string {
	s := fmt.Sprintf("growatt: %s: vendor error %d: %s", e.Endpoint, e.Code, e.Message)
	if e.Hint != "" {
		s += " (" + e.Hint + ")"
	}
	return s
}

// ValidationError reports a request that violates the documented parameter
// set or a response that does not match the documented schema.
type ValidationError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("growatt: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("growatt: %s: %s", e.Op, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UnknownDeviceTypeError is returned when the vendor reports a device-type
// code that is absent from the registry tables.
type UnknownDeviceTypeError struct {
	DeviceSN string
	Code     int
}

func (e *UnknownDeviceTypeError) Error() string {
	return fmt.Sprintf("growatt: device %s: unknown device type code %d", e.DeviceSN, e.Code)
}

// Vendor error codes shared across v1 endpoints, from the official API docs.
var genericErrorHints = map[int]string{
	10011: "no privilege access",
	10012: "API rate limit exceeded (same request only once every 5 minutes)",
	10013: "the number per page cannot be greater than 100",
	10014: "the number of pages cannot be greater than 250 pages",
	-1:    "please use the new domain name to access",
}
