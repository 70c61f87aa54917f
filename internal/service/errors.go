// Package service provides the application-level services of the wardrobe
// engine: category policy, cloth lifecycle, outfits, the activity ledger,
// laundry workflows, trips, preferences, and audit logging.
//
// Error handling principles:
//  1. Expected conditions surface as store sentinel errors (store.ErrNotFound,
//     store.ErrConflict) or domain validation errors, checked with errors.Is.
//  2. Unexpected errors are wrapped in ServiceError for context.
//  3. Validation always happens before the first write of an operation.
//  4. The API layer maps these errors to HTTP status codes.
package service

import "fmt"

// ServiceError is a custom error type for service errors with operation
// context.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
