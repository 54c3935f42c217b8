package entity

import "errors"

var (
	// ErrNotFound indicates that a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrValidation indicates that input data failed validation checks
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that a record with the same key already exists
	ErrDuplicate = errors.New("record already exists")

	// ErrProviderUnavailable indicates that a rate provider could not serve the request
	ErrProviderUnavailable = errors.New("rate provider unavailable")

	// ErrProviderNotConfigured indicates that a rate provider is missing its credentials
	ErrProviderNotConfigured = errors.New("rate provider not configured")

	// ErrMalformedPayload indicates that a rate provider answered with an unusable body
	ErrMalformedPayload = errors.New("malformed provider payload")
)
