package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrPartyFrozen) holds regardless of the message text.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInvalidState        = "INVALID_STATE"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeValidation          = "VALIDATION_ERROR"
	CodePartyFrozen         = "PARTY_FROZEN"
	CodePartyDisabled       = "PARTY_DISABLED"
	CodeCreditLimitExceeded = "CREDIT_LIMIT_EXCEEDED"
	CodeLinkExists          = "LINK_EXISTS"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrValidation          = NewDomainError(CodeValidation, "Validation failed")
	ErrPartyFrozen         = NewDomainError(CodePartyFrozen, "Party is frozen")
	ErrPartyDisabled       = NewDomainError(CodePartyDisabled, "Party is disabled")
	ErrCreditLimitExceeded = NewDomainError(CodeCreditLimitExceeded, "Credit limit exceeded")
	ErrLinkExists          = NewDomainError(CodeLinkExists, "Resource is linked to other records")
)

// IsValidationFailure reports whether err is a business validation failure.
// Credit limit violations count as validation failures.
func IsValidationFailure(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case CodeValidation, CodeCreditLimitExceeded:
		return true
	}
	return false
}
