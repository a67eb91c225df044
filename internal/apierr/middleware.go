package apierr

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ErrorResponse is the standard error response body, generalized from the
// teacher's exception.ErrorResponse.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func newErrorResponse(status int, errType, message string) ErrorResponse {
	return ErrorResponse{Timestamp: time.Now(), Status: status, Error: errType, Message: message}
}

// RecoveryMiddleware converts panics into 500 responses instead of crashing
// the handler goroutine. Equivalent to the teacher's ErrorHandlerMiddleware.
func RecoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.FullPath()).Msg("recovered from panic")
				c.JSON(http.StatusInternalServerError, newErrorResponse(
					http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred",
				))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// HandleNotFound writes a 404 response for a missing resource.
func HandleNotFound(c *gin.Context, err *NotFoundError) {
	c.JSON(http.StatusNotFound, newErrorResponse(http.StatusNotFound, "Not Found", err.Error()))
}

// HandleValidationError writes a 422 response, including field-level detail
// when the error carries any (either its own Fields map or binding-layer
// validator.ValidationErrors).
func HandleValidationError(c *gin.Context, err error) {
	fields := map[string]string{}
	switch e := err.(type) {
	case *ValidationError:
		for k, v := range e.Fields {
			fields[k] = v
		}
	case validator.ValidationErrors:
		for _, fe := range e {
			fields[fe.Field()] = fe.Tag() + " validation failed"
		}
	}
	resp := newErrorResponse(http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	if len(fields) > 0 {
		resp.ValidationErrors = fields
	}
	c.JSON(http.StatusUnprocessableEntity, resp)
}

// HandleServiceUnavailable writes a 503 response for a transient broker
// failure.
func HandleServiceUnavailable(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, newErrorResponse(http.StatusServiceUnavailable, "Service Unavailable", err.Error()))
}

// HandleInternalError writes a generic 500 response.
func HandleInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, "Internal Server Error", err.Error()))
}
