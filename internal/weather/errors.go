package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch attempt failed.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransport  ErrorKind = "transport"
	KindHTTPStatus ErrorKind = "http_status"
	KindAPILogical ErrorKind = "api_logical"
	KindParse      ErrorKind = "parse"
)

// User-facing messages for failures that carry no extra detail.
const (
	MsgMissingAPIKey   = "API Key not found. Set the WEATHER_API_KEY environment variable."
	MsgEmptyCity       = "Please enter a city name."
	MsgConnection      = "Connection Error: check your internet connection."
	MsgTimeout         = "Timeout Error: the request timed out."
	MsgTooManyRedirect = "Too many Redirects: check the URL."
	MsgUnauthorized    = "Unauthorized: Invalid API Key."
	MsgCityNotFound    = "City not found."
	MsgFetchFailed     = "Error fetching weather data."
	MsgCircuitOpen     = "Service Unavailable: too many failed requests, try again shortly."
)

// ErrorReport is the terminal outcome of a failed fetch. Message is what the
// display surface shows in place of the temperature.
type ErrorReport struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`

	cause error
}

func (e *ErrorReport) Error() string {
	return e.Message
}

func (e *ErrorReport) Unwrap() error {
	return e.cause
}

// NewErrorReport builds a report with an optional underlying cause.
func NewErrorReport(kind ErrorKind, message string, cause error) *ErrorReport {
	return &ErrorReport{Kind: kind, Message: message, cause: cause}
}

// StatusReport builds an HTTP status report for code.
func StatusReport(code int, message string) *ErrorReport {
	return &ErrorReport{Kind: KindHTTPStatus, Message: message, Status: code}
}

// AsReport converts any error into an ErrorReport. Errors that are not
// already reports become generic request errors.
func AsReport(err error) *ErrorReport {
	if err == nil {
		return nil
	}
	var rep *ErrorReport
	if errors.As(err, &rep) {
		return rep
	}
	return NewErrorReport(KindTransport, fmt.Sprintf("Request Error: %v", err), err)
}

// IsKind reports whether err is an ErrorReport of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rep *ErrorReport
	return errors.As(err, &rep) && rep.Kind == kind
}
