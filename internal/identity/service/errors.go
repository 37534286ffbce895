package service

import "errors"

// Business errors translated to HTTP statuses at the transport boundary.
// Anything else escaping the service is infrastructure failure and surfaces
// as a generic 500.
var (
	ErrMissingFields       = errors.New("missing_fields")
	ErrInvalidRole         = errors.New("invalid_role")
	ErrEmailTaken          = errors.New("email_taken")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrRoleMismatch        = errors.New("role_mismatch")
	ErrNotFound            = errors.New("user_not_found")
	ErrUnsupportedFileType = errors.New("unsupported_file_type")
)
