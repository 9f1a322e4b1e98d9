package employees

import (
	"net/http"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// Error is a failure that is safe to show to the API caller.
// Status is the HTTP status the failure maps to.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrMissingFields = &Error{
		Code:    "MISSING_FIELDS",
		Message: "You must include all required fields in your request",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidRole = &Error{
		Code:    "INVALID_ROLE",
		Message: "The value for role must be one of " + joinRoles(),
		Status:  http.StatusBadRequest,
	}
	ErrMalformedHireDate = &Error{
		Code:    "MALFORMED_HIRE_DATE",
		Message: "Hire date must be in the format of YYYY-MM-DD",
		Status:  http.StatusBadRequest,
	}
	ErrFutureHireDate = &Error{
		Code:    "FUTURE_HIRE_DATE",
		Message: "Date must be in the past",
		Status:  http.StatusBadRequest,
	}
	ErrNotFound = &Error{
		Code:    "NOT_FOUND",
		Message: "No employee with this ID has been found",
		Status:  http.StatusNotFound,
	}
)

func joinRoles() string {
	roles := models.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	return strings.Join(names, ",")
}
