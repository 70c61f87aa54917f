package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in the
	// store. Entity-specific variants wrap this sentinel.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an operation is blocked by dependent
	// records, e.g. deleting a category that still has children.
	ErrConflict = errors.New("conflict")

	// Entity-specific "not found" errors

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrClothNotFound indicates that the requested cloth does not exist.
	ErrClothNotFound = fmt.Errorf("%w: cloth", ErrNotFound)

	// ErrOutfitNotFound indicates that the requested outfit does not exist.
	ErrOutfitNotFound = fmt.Errorf("%w: outfit", ErrNotFound)

	// ErrActivityNotFound indicates that the requested activity log does not exist.
	ErrActivityNotFound = fmt.Errorf("%w: activity log", ErrNotFound)

	// ErrTripNotFound indicates that the requested trip does not exist.
	ErrTripNotFound = fmt.Errorf("%w: trip", ErrNotFound)

	// ErrEssentialNotFound indicates that the requested essential does not exist.
	ErrEssentialNotFound = fmt.Errorf("%w: essential", ErrNotFound)

	// ErrUserNotFound indicates that no local user account exists.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "conflict" errors

	// ErrCategoryHasChildren indicates that a category cannot be deleted
	// while subcategories still reference it.
	ErrCategoryHasChildren = fmt.Errorf("%w: category has children", ErrConflict)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if the error is any kind of "conflict" error.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Table     Table  // The table the operation targeted
	Operation string // The operation that failed (e.g., "put", "delete")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Table, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Table, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given table, operation,
// message, and wrapped error.
func NewStoreError(table Table, operation, message string, err error) *StoreError {
	return &StoreError{
		Table:     table,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
