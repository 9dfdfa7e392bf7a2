package apperrors

import "errors"

// ErrNotFound indicates that a requested debtor could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStorage indicates that the backing ledger document could not be read or written.
var ErrStorage = errors.New("storage error")
