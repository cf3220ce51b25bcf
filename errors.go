package paygate

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationExpired is an exported constant or variable used by the gateway client.
	ErrAuthenticationExpired = errors.New("authentication expired")
	// ErrInvalidConfig is an exported constant or variable used by the gateway client.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// APIError defines a public type used by paygate APIs.
//
// It carries the structured exception fields the gateway places in its error
// envelope: a numeric gateway code plus a one-line message and an optional
// longer description. Status is the HTTP status the response arrived with;
// the gateway reports most domain failures with status 200 and a
// success:false envelope, so Code is the authoritative discriminator.
type APIError struct {
	Status      int
	Code        int
	Message     string
	Description string
}

// Error describes the error operation and its observable behavior.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("paygate: %s (code %d): %s", e.Message, e.Code, e.Description)
	}
	return fmt.Sprintf("paygate: %s (code %d)", e.Message, e.Code)
}

// IsValidation reports whether the failure is a caller-side problem
// (malformed order, unknown payment, not-a-merchant) rather than a gateway
// outage.
func (e *APIError) IsValidation() bool {
	return e.Status < 500
}

// IsServer reports whether the gateway itself failed. Server failures are
// never retried by the pipeline.
func (e *APIError) IsServer() bool {
	return e.Status >= 500
}

// TransportError defines a public type used by paygate APIs.
//
// TransportError wraps connectivity-level failures (DNS, refused
// connections, timeouts surfaced by the injected http.Client). It is never
// retried beyond the single unauthorized retry cycle.
type TransportError struct {
	Op  string
	URL string
	Err error
}

// Error describes the error operation and its observable behavior.
func (e *TransportError) Error() string {
	return fmt.Sprintf("paygate: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes the underlying transport failure for errors.Is/As chains.
func (e *TransportError) Unwrap() error {
	return e.Err
}
