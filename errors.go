package mrq

import (
	"errors"
	"fmt"
	"net"
)

// ErrorCode classifies client errors.
type ErrorCode int

const (
	// ErrCodeConfig indicates a configuration error raised before any
	// network activity (eg. an https URL with TLS support disabled).
	ErrCodeConfig ErrorCode = iota
	// ErrCodeConnection indicates a transport failure (DNS, refused
	// connection, broken pipe).
	ErrCodeConnection
	// ErrCodeTimeout indicates a connect, read, or write deadline expiry.
	ErrCodeTimeout
	// ErrCodeMalformedResponse indicates a structural violation of the
	// response grammar, such as a header line without a colon.
	ErrCodeMalformedResponse
	// ErrCodeDecode indicates the body decompressor rejected its input.
	ErrCodeDecode
	// ErrCodeTooManyRedirects indicates the redirect hop limit was hit.
	ErrCodeTooManyRedirects
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConfig:
		return "config"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeMalformedResponse:
		return "malformed_response"
	case ErrCodeDecode:
		return "decode"
	case ErrCodeTooManyRedirects:
		return "too_many_redirects"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("mrq: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string) *Error {
	return &Error{Code: ErrCodeConfig, Message: msg}
}

// NewConnectionError creates a transport error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewMalformedResponseError creates a malformed-response error.
func NewMalformedResponseError(msg string) *Error {
	return &Error{Code: ErrCodeMalformedResponse, Message: msg}
}

// NewDecodeError creates a body decode error.
func NewDecodeError(err error) *Error {
	return &Error{Code: ErrCodeDecode, Message: err.Error(), Err: err}
}

// NewRedirectError creates a too-many-redirects error.
func NewRedirectError(hops int) *Error {
	return &Error{Code: ErrCodeTooManyRedirects, Message: fmt.Sprintf("stopped after %d redirects", hops)}
}

// classifyTransportError maps a raw transport error to a timeout or a
// connection error. Deadline expiries report as timeouts.
func classifyTransportError(err error) *Error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfig
}

// IsConnection checks if an error is a transport error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsMalformedResponse checks if an error is a malformed-response error.
func IsMalformedResponse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMalformedResponse
}

// IsDecode checks if an error is a body decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDecode
}

// IsTooManyRedirects checks if an error is a redirect-limit error.
func IsTooManyRedirects(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTooManyRedirects
}
