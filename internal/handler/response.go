package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"viptrip/internal/repository"
	"viptrip/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrTripNotFound):
		return http.StatusNotFound

	// Validation/business rule errors - Bad Request
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidStartDate),
		errors.Is(err, service.ErrTripNotCancelable),
		errors.Is(err, service.ErrTripAlreadyCompleted),
		errors.Is(err, service.ErrDriverNotAtDestination),
		errors.Is(err, service.ErrDriverLocationUnknown):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrSettlementInProgress):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
