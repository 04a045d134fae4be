package httpx

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers connectivity loss, DNS failures and timeouts
	ErrTransport = errors.New("network request failed")

	// ErrHTTPStatus matches any *StatusError
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrDecode means the body was not the JSON shape we expected
	ErrDecode = errors.New("malformed response")

	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")

	// ErrCircuitOpen is returned without contacting the endpoint while the
	// breaker is open
	ErrCircuitOpen = errors.New("service temporarily unavailable")
)

// StatusError reports a non-2xx response
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Code, e.Body)
}

// Is makes errors.Is(err, ErrHTTPStatus) work for any status error
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// DecodeError wraps a JSON decoding failure with the service name
func DecodeError(service string, err error) error {
	return fmt.Errorf("%s: %w: %w", service, ErrDecode, err)
}

// Kind returns a short label for logging: transport, status, decode,
// not_found, circuit_open, canceled or unknown.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrHTTPStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case isCanceled(err):
		return "canceled"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}
