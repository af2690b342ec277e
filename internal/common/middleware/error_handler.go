package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"secret-santa-backend/internal/common/errors"
)

const requestIDKey = "request_id"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string           `json:"error" example:"Code not found"`
	Code      errors.ErrorCode `json:"code,omitempty" example:"NOT_FOUND"`
	RequestID string           `json:"request_id,omitempty"`
}

// RequestID propagates X-Request-ID or mints a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Recovery turns panics into a 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, fmt.Sprintf("%v", recovered))
		SendError(c, appErr)
	})
}

// ErrorHandler renders the last error attached with c.Error once the
// handler chain has finished without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrCodeInternal, err.Error())
		}
		SendError(c, appErr)
	}
}

// SendError writes appErr as JSON and logs it at a level matching its class.
func SendError(c *gin.Context, appErr *errors.AppError) {
	requestID := GetRequestID(c)
	appErr.WithRequestID(requestID)

	status := appErr.HTTPStatus()
	event := log.Info()
	if appErr.IsInternal() {
		event = log.Error().Err(appErr.Cause)
	}
	event.
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Int("status", status).
		Interface("details", appErr.Details).
		Msg(appErr.Message)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     appErr.Message,
		Code:      appErr.Code,
		RequestID: requestID,
	})
}

// GetRequestID returns the id stored by RequestID.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}

// NotFound answers unmatched routes with the standard body.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "Route not found",
			Code:      errors.ErrCodeNotFound,
			RequestID: GetRequestID(c),
		})
	}
}
