// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full error taxonomy of the platform:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed bounds
//   - ObjectNotFoundError: a record cannot be found by its identifier
//   - InvalidTransitionError: an order status change is not in the transition table
//   - ConflictError: a concurrent caller won the race for the same record
//   - ForbiddenError: the actor has no relationship to the record
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, which is how
// the HTTP adapter maps domain failures onto status codes. Conflict is reported
// distinctly from InvalidTransition so a caller can decide whether to retry
// against fresh data.
package errs
