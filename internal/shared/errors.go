package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrValidation    = fmt.Errorf("validation failed")
	ErrMissingField  = fmt.Errorf("required field is empty")
	ErrInvalidEmail  = fmt.Errorf("invalid email format")
	ErrShortPassword = fmt.Errorf("password must be at least 6 characters")
	ErrInvalidFlag   = fmt.Errorf("invalid flag value")

	// Account and session errors
	ErrDuplicateEmail     = fmt.Errorf("email already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Persistence errors
	ErrNotFound = fmt.Errorf("record not found")

	// External provider errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNoTranscription    = fmt.Errorf("no transcription result")
)
