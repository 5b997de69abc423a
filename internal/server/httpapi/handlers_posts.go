package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/server/services"
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}

// createPost stores a new post. The author is always the authenticated
// caller; an author id in the body would be ignored by binding.
func (s *Server) createPost(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		s.abortWithError(c, common.ErrTokenMissing)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortBadRequest(c, err.Error())
		return
	}

	post, err := s.posts.Create(c.Request.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "post created", "id", post.ID, "author_id", post.AuthorID)
	c.JSON(http.StatusCreated, post)
}

func (s *Server) listPosts(c *gin.Context) {
	posts, err := s.posts.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	id, err := resourceID(c)
	if err != nil {
		s.abortBadRequest(c, "invalid id")
		return
	}

	post, err := s.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *Server) updatePost(c *gin.Context) {
	id, err := resourceID(c)
	if err != nil {
		s.abortBadRequest(c, "invalid id")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortBadRequest(c, err.Error())
		return
	}

	post, err := s.posts.Update(c.Request.Context(), id, services.PostPatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *Server) deletePost(c *gin.Context) {
	id, err := resourceID(c)
	if err != nil {
		s.abortBadRequest(c, "invalid id")
		return
	}

	msg, err := s.posts.Delete(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
