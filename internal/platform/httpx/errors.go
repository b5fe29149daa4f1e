// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// RespondError maps authorization and domain errors to HTTP responses
// using RFC7807. Unknown errors collapse to a 500 with no detail; a
// failing guard therefore always denies.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthenticated", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Invalid Credentials", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrNoRole),
		errors.Is(err, shared.ErrInvalidRole),
		errors.Is(err, shared.ErrMissingPermission),
		errors.Is(err, shared.ErrEntityMismatch),
		errors.Is(err, shared.ErrSuperAdminProtected):
		Problem(w, http.StatusForbidden, "Forbidden", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrEditWindowExpired):
		zero := int64(0)
		JSON(w, http.StatusForbidden, ProblemDetail{
			Title:         "Forbidden",
			Status:        http.StatusForbidden,
			Detail:        shared.UserSafeMessage(err),
			RemainingTime: &zero,
		})
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", shared.UserSafeMessage(err))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
