package booking

import "fmt"

// Error codes surfaced by the booking lifecycle.
const (
	CodeValidation              = "validation_error"
	CodeNotFound                = "not_found"
	CodeAccessDenied            = "access_denied"
	CodeProfessionalUnavailable = "professional_unavailable"
	CodeSlotConflict            = "slot_conflict"
	CodeInvalidTransition       = "invalid_transition"
)

// BookingError is a categorised failure. Two BookingErrors match under
// errors.Is when their codes are equal, so callers compare against the
// sentinels below regardless of the message.
type BookingError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation              = &BookingError{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound                = &BookingError{Code: CodeNotFound, Message: "not found"}
	ErrAccessDenied            = &BookingError{Code: CodeAccessDenied, Message: "access denied"}
	ErrProfessionalUnavailable = &BookingError{Code: CodeProfessionalUnavailable, Message: "professional is not available"}
	ErrSlotConflict            = &BookingError{Code: CodeSlotConflict, Message: "time slot is already booked"}
	ErrInvalidTransition       = &BookingError{Code: CodeInvalidTransition, Message: "status transition not allowed"}
)

func newError(code, format string, args ...any) *BookingError {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func validationError(msg string, details map[string]string) *BookingError {
	return &BookingError{Code: CodeValidation, Message: msg, Details: details}
}
