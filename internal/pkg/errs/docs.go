// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two families of errors:
//   - Input problems: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - Domain outcomes: ObjectNotFoundError, UnauthenticatedError, ForbiddenError,
//     InvalidStateTransitionError, ConflictError, UpstreamFailureError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrForbidden)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel (and the cause, where one exists)
//
// Validation and authorization failures are raised before any mutation is
// attempted; state-machine and concurrency failures are raised inside the
// transaction and roll it back wholesale. Nothing is silently swallowed: every
// error carries enough detail for the caller to decide whether to retry,
// prompt the user, or abandon.
package errs
