package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrTooManyRequests = errors.New("too many requests")
	ErrUnavailable     = errors.New("unavailable")
)

// Phone verification failures. Each wraps one of the generic sentinels above.
var (
	ErrInvalidPhoneFormat = fmt.Errorf("invalid phone format: %w", ErrBadRequest)
	ErrCodeNotFound       = fmt.Errorf("verification code not found: %w", ErrNotFound)
	ErrCodeExpired        = fmt.Errorf("verification code expired: %w", ErrUnauthorized)
	ErrCodeMismatch       = fmt.Errorf("verification code mismatch: %w", ErrUnauthorized)
	ErrTooManyAttempts    = fmt.Errorf("too many verification attempts: %w", ErrTooManyRequests)
	ErrDeliveryFailed     = fmt.Errorf("sms delivery failed: %w", ErrUnavailable)
)

// MessageError pairs a user-facing message with the sentinel that decides
// its HTTP status.
type MessageError struct {
	Msg  string
	Kind error
}

func (e *MessageError) Error() string { return e.Msg }
func (e *MessageError) Unwrap() error { return e.Kind }

// Invalid returns a bad-request error whose text is shown to the client as-is.
func Invalid(msg string) error {
	return &MessageError{Msg: msg, Kind: ErrBadRequest}
}
