package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextUserIDKey = "user_id"
	contextEmailKey  = "user_email"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.authsvc.Verify(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, claims.UserID.String())
		c.Set(contextEmailKey, claims.Email)
		c.Next()
	}
}
