package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies qualification failures.
type ErrorCode string

const (
	ErrCodeInvalidIncome        ErrorCode = "INVALID_INCOME"
	ErrCodeInvalidHomeValue     ErrorCode = "INVALID_HOME_VALUE"
	ErrCodeMalformedRow         ErrorCode = "MALFORMED_ROW"
	ErrCodeRateSheetUnavailable ErrorCode = "RATE_SHEET_UNAVAILABLE"
)

// DomainError is a classified failure. Two DomainErrors match under
// errors.Is when their codes are equal.
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidIncome = &DomainError{
		Code:    ErrCodeInvalidIncome,
		Message: "monthly income must be non-zero",
	}
	ErrInvalidHomeValue = &DomainError{
		Code:    ErrCodeInvalidHomeValue,
		Message: "home value must be non-zero",
	}
	ErrMalformedRow = &DomainError{
		Code:    ErrCodeMalformedRow,
		Message: "malformed rate sheet row",
	}
	ErrRateSheetUnavailable = &DomainError{
		Code:    ErrCodeRateSheetUnavailable,
		Message: "rate sheet unavailable",
	}
)

// NewMalformedRowError reports a bad row at the given 1-based line.
func NewMalformedRowError(line int, reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedRow,
		Message: ErrMalformedRow.Message,
		Details: fmt.Sprintf("line %d: %s", line, reason),
	}
}

func NewRateSheetUnavailableError(details string) *DomainError {
	return &DomainError{
		Code:    ErrCodeRateSheetUnavailable,
		Message: ErrRateSheetUnavailable.Message,
		Details: details,
	}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}
