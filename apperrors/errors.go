package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so callers can distinguish a
// validation failure from a gateway decline or an unreachable dependency.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindGatewayDeclined Kind = "gateway_declined"
	KindTransport       Kind = "transport"
	KindInternal        Kind = "internal"
)

// Error represents an application error with an HTTP status mapping.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation reports a missing or invalid required field. The operation is
// aborted before any store write.
func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// NotFound reports that a referenced id or slug has no matching record.
func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// Declined reports a payment that the gateway refused to authorize. It is
// distinct from a transport error: the gateway was reached and said no.
func Declined(message string) *Error {
	return New(KindGatewayDeclined, http.StatusPaymentRequired, message, nil)
}

// Transport reports an unreachable store, gateway or mail service.
func Transport(message string, err error) *Error {
	return New(KindTransport, http.StatusBadGateway, message, err)
}

// Internal reports an unexpected condition.
func Internal(err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, "Internal server error", err)
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
