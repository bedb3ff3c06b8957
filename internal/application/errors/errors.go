// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates dataset or filter validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ComputationError indicates a defect profile could not be computed.
type ComputationError struct {
	Cause   error
	Defect  string
	Message string
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("computation failed for defect %s: %s: %v", e.Defect, e.Message, e.Cause)
	}
	return fmt.Sprintf("computation failed for defect %s: %s", e.Defect, e.Message)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// NewComputationError creates a new computation error.
func NewComputationError(defect, message string, cause error) *ComputationError {
	return &ComputationError{
		Defect:  defect,
		Message: message,
		Cause:   cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
