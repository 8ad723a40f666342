// Package errs provides standardized error types for the order and invoice services.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for validation failures and for the
// application-level taxonomy surfaced to callers:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a referenced order, projection or invoice is absent
//   - InvalidTransitionError: an order status change outside the allowed set
//   - ConflictError: a lost race the caller may retry
//   - InternalFaultError: a storage or channel failure, rendered without detail
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
