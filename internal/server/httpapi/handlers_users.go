package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Name     *string `json:"name" binding:"omitempty,min=1"`
}

func (s *Server) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortBadRequest(c, err.Error())
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "id", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) loginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortBadRequest(c, err.Error())
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// me returns the caller's identity claims exactly as attached by the
// authentication guard; no storage round trip happens here.
func (s *Server) me(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		s.abortWithError(c, common.ErrTokenMissing)
		return
	}

	c.JSON(http.StatusOK, claims)
}

func (s *Server) updateUser(c *gin.Context) {
	id, err := resourceID(c)
	if err != nil {
		s.abortBadRequest(c, "invalid id")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortBadRequest(c, err.Error())
		return
	}

	user, err := s.users.Update(c.Request.Context(), id, services.UserPatch{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, err := resourceID(c)
	if err != nil {
		s.abortBadRequest(c, "invalid id")
		return
	}

	msg, err := s.users.Delete(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
