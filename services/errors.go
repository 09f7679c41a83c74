package services

import "fmt"

// Validation failure reasons, checked before any network call is made.
const (
	ReasonInvalidLocationCode   = "invalid_location_code"
	ReasonInvalidDateFormat     = "invalid_date_format"
	ReasonPastDepartureDate     = "past_departure_date"
	ReasonReturnBeforeDeparture = "return_before_departure"
)

// ValidationError reports a malformed or out-of-range request parameter.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a non-success HTTP status or a network-level
// failure while talking to an upstream API.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError means the API was reachable but reported a logical error
// in its response body. Message carries the upstream text verbatim.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// ConfigurationError means a required secret was absent at startup. The
// component that needs it refuses to initialize instead of degrading.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set", e.Key)
}
