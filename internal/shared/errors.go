package shared

import "errors"

var (
	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPeriod indicates an unparseable report date or unknown period mode.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrAlreadyExists indicates a uniqueness conflict on create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates a request body that fails a domain check.
	ErrValidation = errors.New("validation failed")
)
