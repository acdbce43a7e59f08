package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Cross-user access surfaces as ErrNotFound as well, so existence of another
// user's data is never leaked.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates valid credentials without sufficient rights.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a concurrent modification was detected.
var ErrConflict = errors.New("conflicting update")

// ErrInternal indicates an unexpected internal failure. Any ledger mutation
// that cannot complete in full wraps ErrInternal after rolling back.
var ErrInternal = errors.New("internal error")
