package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbelov/microblog/internal/common"
)

// errorStatus maps the failure taxonomy to HTTP status codes. Anything
// outside the taxonomy is a server fault.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrTokenMissing),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenSignatureInvalid),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError terminates the request with the status for err. Server
// faults are logged and reported with a generic message so storage
// details never reach the client.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (s *Server) abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
