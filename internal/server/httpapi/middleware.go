package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/server/auth"
)

const claimsContextKey = "identityClaims"

// ClaimsFromContext returns the identity claims attached by the
// authentication guard. ok is false on public routes, where no claims
// exist.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// authGuard authenticates every request that is not in the public set.
// Public routes pass through without claims; protected routes must carry
// a valid bearer token, whose claims are attached to the request context
// for downstream guards and handlers.
func (s *Server) authGuard(public map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if public[c.Request.Method+" "+c.FullPath()] {
			c.Next()
			return
		}

		header := c.GetHeader(common.AuthHeaderName)
		if header == "" {
			s.abortWithError(c, common.ErrTokenMissing)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != common.BearerPrefix {
			s.abortWithError(c, common.ErrTokenMalformed)
			return
		}

		claims, err := auth.ValidateToken(parts[1], s.jwtSecret)
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// requestLogger logs method, route, status, and duration for every
// request, tagged with a request id readable from X-Request-Id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
