package server

import (
	"net/http"

	"task-logger/internal/errors"
	"task-logger/internal/logging"
	"task-logger/internal/validation"

	"github.com/gin-gonic/gin"
)

const taskNotFoundMessage = "Task not found"

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeValidation, errors.ErrorTypeConstraint, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "code"} plus field "details" for validation failures
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	message := errors.GetUserMessage(err)
	if status == http.StatusNotFound {
		message = taskNotFoundMessage
	}
	if _, ok := errors.AsAppError(err); !ok {
		message = "An unexpected error occurred. Please try again."
	}

	body := gin.H{
		"error": message,
		"code":  errors.GetErrorCode(err),
	}
	if ve, ok := validation.AsValidationError(err); ok {
		body["details"] = ve.Errors
	} else if appErr, ok := errors.AsAppError(err); ok && appErr.Field() != "" {
		// Storage constraint and malformed input errors name a single field
		body["details"] = []validation.FieldError{{
			Field:   appErr.Field(),
			Type:    validation.ErrorTypeInvalidValue,
			Message: appErr.Message,
		}}
	}

	if errors.ShouldLogError(err) {
		logging.Errorf("%s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, requestID(c), err)
	}

	c.AbortWithStatusJSON(status, body)
}

func respondTaskNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"error": taskNotFoundMessage,
		"code":  "NOT_FOUND",
	})
}
