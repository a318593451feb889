package service

import (
	"errors"
	"net/http"

	"pizza-ordering/internal/token"
)

var (
	// ErrUnauthorized covers a missing, invalid or expired token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOrder covers a structurally invalid order payload
	ErrInvalidOrder = errors.New("invalid order")
	// ErrPizzaNotFound means a line's (name, size) did not resolve
	ErrPizzaNotFound = errors.New("pizza not found")
	// ErrCatalogUnavailable means the catalog service was unreachable or
	// timed out
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrPersistence means the commit transaction could not complete;
	// nothing was written
	ErrPersistence = errors.New("persistence failed")
	// ErrInvalidCredentials covers a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateMember means the member identifier is already taken
	ErrDuplicateMember = errors.New("duplicate member id")
)

// HTTPStatus maps service errors to their contractual status codes
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrTokenInvalid):
		return http.StatusUnauthorized

	case errors.Is(err, ErrInvalidOrder),
		errors.Is(err, ErrPizzaNotFound):
		return http.StatusBadRequest

	case errors.Is(err, ErrDuplicateMember):
		return http.StatusConflict

	case errors.Is(err, ErrCatalogUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
