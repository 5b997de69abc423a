package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/server/auth"
)

// allowOwner is the ownership predicate: the authenticated caller may
// touch the resource only when the ids match exactly.
func allowOwner(claims *auth.Claims, resourceID int64) bool {
	return claims != nil && claims.UserID == resourceID
}

func resourceID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// requireSelf guards routes whose :id parameter is the caller's own user
// id. It runs after the authentication guard and rejects with Forbidden
// when the ids differ; the handler is never invoked on a mismatch.
func (s *Server) requireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			s.abortWithError(c, common.ErrTokenMissing)
			return
		}

		id, err := resourceID(c)
		if err != nil {
			s.abortBadRequest(c, "invalid id")
			return
		}

		if !allowOwner(claims, id) {
			s.abortWithError(c, common.ErrorForbidden)
			return
		}

		c.Next()
	}
}

// requirePostAuthor guards routes whose :id parameter is a post id.
// Post ownership is derived from the stored author id, which requires a
// lookup before the comparison.
func (s *Server) requirePostAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			s.abortWithError(c, common.ErrTokenMissing)
			return
		}

		id, err := resourceID(c)
		if err != nil {
			s.abortBadRequest(c, "invalid id")
			return
		}

		post, err := s.posts.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.abortWithError(c, common.ErrorNotFound)
				return
			}
			s.abortWithError(c, err)
			return
		}

		if !allowOwner(claims, post.AuthorID) {
			s.abortWithError(c, common.ErrorForbidden)
			return
		}

		c.Next()
	}
}
