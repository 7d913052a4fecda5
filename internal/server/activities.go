package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	wadomain "github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
)

func (s *Server) ListActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	req := wadomain.ListRequest{
		DocumentType: c.Query("document_type"),
		BusinessTIN:  c.Query("tin"),
		Status:       c.Query("status"),
		Limit:        limit,
		PageToken:    c.Query("page_token"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		req.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		req.To = &to
	}

	activities, pageInfo, err := s.activitySvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities, "page_info": pageInfo})
}

func (s *Server) GetActivityStats(c *gin.Context) {
	stats, err := s.activitySvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) GetActivityByID(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	activity, err := s.activitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
