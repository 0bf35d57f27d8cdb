package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain validation errors
const (
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	ErrCodeRecordNotFound    = "RECORD_NOT_FOUND"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
)

func NewValidationError(msg string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: msg,
	}
}

func NewInvalidAmountError(amount float64) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("invalid amount %.2f", amount),
	}
}

func NewUnsupportedCurrencyError(code string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("unsupported currency %s", code),
	}
}

func NewCapacityExceededError(capacity int) *DomainError {
	return &DomainError{
		Code:    ErrCodeCapacityExceeded,
		Message: fmt.Sprintf("store is full, capacity %d reached", capacity),
	}
}

func NewRecordNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeRecordNotFound,
		Message: fmt.Sprintf("payment record with ID %s not found", id),
	}
}

func NewInvalidStatusError(s Status) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("unknown payment status %q", s),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
