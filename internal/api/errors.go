package api

import (
	"errors"
	"net/http"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/service"
	"github.com/closetkeep/wardrobe-api/internal/service/auth"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, store.ErrCategoryHasChildren),
		errors.Is(err, service.ErrCategoryCycle),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error strings never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, store.ErrCategoryHasChildren):
		return "Category still has subcategories"

	case errors.Is(err, service.ErrCategoryCycle):
		return "Move would create a category cycle"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrClothNotFound):
		return "Cloth not found"

	case errors.Is(err, store.ErrOutfitNotFound):
		return "Outfit not found"

	case errors.Is(err, store.ErrActivityNotFound):
		return "Activity not found"

	case errors.Is(err, store.ErrTripNotFound):
		return "Trip not found"

	case errors.Is(err, store.ErrEssentialNotFound):
		return "Essential not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDate):
		// Validation messages are written for users and safe to show.
		return err.Error()

	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the standard error response for a service
// failure: mapped status code, safe message, full error in the logs.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
