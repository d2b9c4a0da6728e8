package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
)

// APIResponse is the envelope used for failures. Successful calls return the bare resource.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Error writes the failure envelope and aborts the chain.
func Error(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// FromError maps a service error onto its HTTP status and envelope.
// Internal failures never leak their cause to the caller.
func FromError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	switch {
	case status == http.StatusUnauthorized:
		c.AbortWithStatus(status)
	case status >= http.StatusInternalServerError:
		Error(c, status, internalMessage(err), nil)
	default:
		Error(c, status, messageOf(err), fieldOf(err))
	}
}

func messageOf(err error) string {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ie *apperr.InsufficientDataError
	if errors.As(err, &ie) {
		return ie.Message
	}
	return err.Error()
}

func fieldOf(err error) interface{} {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		return map[string]string{ve.Field: ve.Message}
	}
	return nil
}

func internalMessage(err error) string {
	if apperr.IsUpstream(err) {
		return "analysis service is unavailable, please try again later"
	}
	return "internal server error"
}
