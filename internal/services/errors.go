package services

import (
	"errors"
	"fmt"
)

// ErrMissingGeneratedText marks a downstream response without generated_text
var ErrMissingGeneratedText = errors.New("missing generated_text")

// UpstreamHTTPError is returned when the generation service answers with a
// non-2xx status
type UpstreamHTTPError struct {
	Service    string
	StatusCode int
	Reason     string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("HTTP error calling %s: %d %s", e.Service, e.StatusCode, e.Reason)
}

// NetworkError is returned when the generation service could not be reached
// or did not answer in time
type NetworkError struct {
	Service string
	URL     string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Service, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError is returned when the generation service answered 2xx with a
// body that is not a usable result
type ProtocolError struct {
	Service string
	Err     error
}

func (e *ProtocolError) Error() string {
	if errors.Is(e.Err, ErrMissingGeneratedText) {
		return fmt.Sprintf("%s did not return `generated_text`", e.Service)
	}
	return fmt.Sprintf("invalid response from %s: %v", e.Service, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AsUpstreamHTTPError returns the *UpstreamHTTPError in err's chain, if any
func AsUpstreamHTTPError(err error) (*UpstreamHTTPError, bool) {
	var upstreamErr *UpstreamHTTPError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

// IsNetworkError returns true if the downstream call failed at the transport level
func IsNetworkError(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsProtocolError returns true if the downstream response was unusable
func IsProtocolError(err error) bool {
	var protocolErr *ProtocolError
	return errors.As(err, &protocolErr)
}
