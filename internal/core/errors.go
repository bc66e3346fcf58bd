package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors. Missing and empty tables are recovered as auto-pass
	// inside the evaluators; these codes only appear in logs.
	ErrSymbolDataMissing = &Error{Code: "SYMBOL_DATA_MISSING", Message: "no data table for symbol"}
	ErrSymbolDataEmpty   = &Error{Code: "SYMBOL_DATA_EMPTY", Message: "empty data table for symbol"}

	// Evaluation errors
	ErrSymbolEvalFailed = &Error{Code: "SYMBOL_EVAL_FAILED", Message: "symbol evaluation failed"}
	ErrEmptyUniverse    = &Error{Code: "EMPTY_UNIVERSE", Message: "symbol universe is empty"}

	// Provider errors
	ErrProviderFailed = &Error{Code: "PROVIDER_FAILED", Message: "data provider request failed"}

	// Profile / config errors
	ErrProfileNotFound = &Error{Code: "PROFILE_NOT_FOUND", Message: "strategy profile not found"}
	ErrConfigInvalid   = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing   = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Report storage errors
	ErrReportNotFound = &Error{Code: "REPORT_NOT_FOUND", Message: "report not found"}
	ErrReportInvalid  = &Error{Code: "REPORT_INVALID", Message: "report missing run id"}
)
