// Package response writes the JSON envelope every endpoint answers with and
// maps service errors onto HTTP status codes.
package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"valet_parking/internal/domain"
	"valet_parking/internal/repository"
	"valet_parking/internal/service"
)

// RequestIDKey is where the request id middleware stores the id in the gin context.
const RequestIDKey = "requestID"

type Envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       any                `json:"data,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Paged(c *gin.Context, message string, data any, p domain.Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &p})
}

// Fail aborts the chain with an error envelope.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// Status maps an error onto its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrDuplicateEntry), errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlateNotDetected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrLPRDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes err through the envelope. Internal errors are logged and
// reported generically.
func Error(c *gin.Context, op string, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: request %s: %v", op, c.GetString(RequestIDKey), err)
		Fail(c, status, "Internal server error")
		return
	}
	Fail(c, status, err.Error())
}
