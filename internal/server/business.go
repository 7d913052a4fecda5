package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/kabisa/ebmbridge/internal/business/domain"
)

func (s *Server) ListBusinesses(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	businesses, err := s.businessSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}

func (s *Server) CreateBusiness(c *gin.Context) {
	var req businessdomain.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	business, err := s.businessSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, business)
}

func (s *Server) GetBusinessByID(c *gin.Context) {
	business, err := s.businessSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, business)
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	var req businessdomain.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	business, err := s.businessSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, business)
}

func (s *Server) DeleteBusiness(c *gin.Context) {
	if err := s.businessSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
