package httpserver

import (
	"errors"
	"io"
	"net/http"

	"ct-storefront/internal/domain"
	"ct-storefront/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const conflictCode = "ConcurrentModification"

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var errRateLimited = errors.New("too many requests")

// noPatch leaves the session untouched.
var noPatch domain.Patch

// respond writes data in the success envelope and re-issues the session
// cookie when patch changes the request's session.
func (h *handlers) respond(c *gin.Context, status int, data interface{}, patch domain.Patch) {
	h.persist(c, patch)
	c.JSON(status, envelope{Success: true, Data: data})
}

// persist re-issues the session cookie when patch changes the request's
// session. Error paths call it too so a cart created before the failure
// stays attached.
func (h *handlers) persist(c *gin.Context, patch domain.Patch) {
	if patch.IsEmpty() {
		return
	}
	current := currentSession(c)
	next := current.Apply(patch)
	if !next.Equal(current) {
		h.issueSession(c, next)
	}
}

func writeError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, envelope{Error: &apiError{Message: message, Code: code}})
}

// classify maps err onto a status and a client-safe message.
func classify(err error) (status int, message, code string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message, ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), ""
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error(), ""
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found", ""
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "cart was modified, reload it and retry", conflictCode
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests, errRateLimited.Error(), ""
	default:
		return http.StatusInternalServerError, "something went wrong, please try again", ""
	}
}

// errorMiddleware renders the last handler error as the error envelope.
// Server errors are logged with full context; their detail never reaches the
// client.
func errorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message, code := classify(err)

		fields := []zap.Field{
			zap.String("requestId", logging.RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Debug("request rejected", fields...)
		}
		writeError(c, status, message, code)
	}
}

// fail records err for errorMiddleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bind decodes an optional JSON body into dst. An empty body leaves dst
// untouched.
func bind(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.Invalid("invalid request body")
	}
	return nil
}
