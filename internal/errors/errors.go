// Package errors defines the typed failures the analytics engine can
// return. Every failure is recoverable at the API boundary: report
// functions return one of these instead of panicking, and the handler
// layer maps them to HTTP statuses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the three failure kinds.
const (
	CodeUnknownAnalysis      = "UNKNOWN_ANALYSIS"
	CodeMissingRequiredInput = "MISSING_REQUIRED_INPUT"
	CodeMalformedColumn      = "MALFORMED_COLUMN"
)

// AnalysisError is a typed engine failure.
type AnalysisError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UnknownAnalysis reports a request for an analysis identifier outside
// the fixed set.
func UnknownAnalysis(id string) *AnalysisError {
	return &AnalysisError{
		Code:    CodeUnknownAnalysis,
		Message: fmt.Sprintf("unknown analysis %q", id),
	}
}

// MissingRequiredInput reports an absent mandatory table or column.
func MissingRequiredInput(what string) *AnalysisError {
	return &AnalysisError{
		Code:    CodeMissingRequiredInput,
		Message: fmt.Sprintf("required input %q is missing", what),
	}
}

// MalformedColumn reports a column that exists but could not be parsed
// into its expected type for any row.
func MalformedColumn(column, reason string) *AnalysisError {
	return &AnalysisError{
		Code:    CodeMalformedColumn,
		Message: fmt.Sprintf("column %q is malformed: %s", column, reason),
	}
}

// codeOf extracts the analysis error code, or "" for foreign errors.
func codeOf(err error) string {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsUnknownAnalysis reports whether err is an UnknownAnalysis failure.
func IsUnknownAnalysis(err error) bool {
	return codeOf(err) == CodeUnknownAnalysis
}

// IsMissingRequiredInput reports whether err is a MissingRequiredInput failure.
func IsMissingRequiredInput(err error) bool {
	return codeOf(err) == CodeMissingRequiredInput
}

// IsMalformedColumn reports whether err is a MalformedColumn failure.
func IsMalformedColumn(err error) bool {
	return codeOf(err) == CodeMalformedColumn
}
