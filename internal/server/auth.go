package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
)

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (s *Server) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userID := c.GetString(contextUserIDKey)
	if err := s.authsvc.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(contextUserIDKey),
		"email":   c.GetString(contextEmailKey),
	})
}
