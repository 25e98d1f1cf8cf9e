package storage

import (
	"errors"
	"fmt"
)

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError represents a storage-specific error with a code and message.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrKeyNotFound creates an error for a missing record.
func ErrKeyNotFound(key string) *StorageError {
	return &StorageError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("no record stored under key: %s", key),
	}
}

// ErrInvalidKey creates an error for a key that is not a bare name.
func ErrInvalidKey(key string) *StorageError {
	return &StorageError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("invalid storage key: %s", key),
	}
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code == codeNotFound
	}
	return false
}
