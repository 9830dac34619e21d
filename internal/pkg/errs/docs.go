// Package errs provides standardized error types for the dispatch backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for common failure scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value is outside its allowed bounds
//   - ObjectNotFoundError: for when an object cannot be found
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Domain-specific failures (job not claimable, invalid status transition)
// live next to their aggregates; this package carries only the generic
// validation and lookup taxonomy shared across layers.
package errs
