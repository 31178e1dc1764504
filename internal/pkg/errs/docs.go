// Package errs provides standardized error types for the restaurant order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per failure kind the order core can report:
//   - ObjectNotFoundError: an order, product, customer or address index does not exist
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - PermissionDeniedError: the actor lacks rights for the requested operation
//   - InvalidStateError: the operation is not valid for the current order status
//   - VerificationFailedError: a delivery confirmation code did not match
//   - ConcurrencyConflictError: another writer changed the same order first
//   - UpstreamUnavailableError: persistence or a lookup collaborator could not be reached
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works across wrapping
//
// Callers classify failures with errors.Is against the sentinels, or with the
// IsValidation and IsRetryable helpers.
package errs
