// Package errors provides typed error values for pegvault.
//
// Every specific error belongs to one category. Callers can test for the
// specific condition or for the whole category with errors.Is:
//
//	if errors.Is(err, pverrors.ErrNameCollision) { ... }
//	if errors.Is(err, pverrors.ErrCollision) { ... }
//
// # Categories
//
//   - ErrValidation: bad path, extension, peg or permissions
//   - ErrIO: open, read or write failure in the middle of an operation
//   - ErrCollision: vault name already taken, or re-encryption attempt
//   - ErrHash: digest computation failure
//   - ErrConfig: vault path exists but is not a directory
//
// Category returns the upper-case name used in history event records.
package errors
