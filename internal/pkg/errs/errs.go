package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per failure kind.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidState        = errors.New("invalid state")
	ErrVerificationFailed  = errors.New("verification failed")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// IsValidation reports whether err is one of the validation kinds
// (required, invalid or out of range).
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// IsRetryable reports whether the caller may retry the same request.
// Conflicts can be retried immediately, unavailable upstreams with backoff.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) || errors.Is(err, ErrUpstreamUnavailable)
}

func sanitize(v any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails a format or business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value is outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// PermissionDeniedError is returned when an actor may not perform an operation.
type PermissionDeniedError struct {
	Operation string
	Reason    string
}

func NewPermissionDeniedError(operation, reason string) *PermissionDeniedError {
	return &PermissionDeniedError{Operation: operation, Reason: reason}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPermissionDenied, e.Operation, e.Reason)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// InvalidStateError is returned when an action is not valid for the current state of an object.
type InvalidStateError struct {
	Action string
	State  string
	Cause  error
}

func NewInvalidStateError(action, state string) *InvalidStateError {
	return &InvalidStateError{Action: action, State: state}
}

func NewInvalidStateErrorWithCause(action, state string, cause error) *InvalidStateError {
	return &InvalidStateError{Action: action, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: cannot %s in state %q", ErrInvalidState, e.Action, e.State), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// VerificationFailedError is returned when a supplied proof does not match the expected secret.
type VerificationFailedError struct {
	Subject string
	Reason  string
}

func NewVerificationFailedError(subject, reason string) *VerificationFailedError {
	return &VerificationFailedError{Subject: subject, Reason: reason}
}

func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrVerificationFailed, e.Subject, e.Reason)
}

func (e *VerificationFailedError) Unwrap() error {
	return ErrVerificationFailed
}

// ConcurrencyConflictError is returned to the loser of a concurrent write.
// The request can be retried as is.
type ConcurrencyConflictError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConcurrencyConflictError(entity string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity, ID: id}
}

func NewConcurrencyConflictErrorWithCause(entity string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s %s was modified concurrently", ErrConcurrencyConflict, e.Entity, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// UpstreamUnavailableError is returned when a collaborator (database, catalog) cannot be reached.
// It never means the requested object is absent.
type UpstreamUnavailableError struct {
	Upstream string
	Cause    error
}

func NewUpstreamUnavailableError(upstream string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Upstream: upstream, Cause: cause}
}

func (e *UpstreamUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Upstream), e.Cause)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}
