package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListTransactions(c *gin.Context) {
	tin := c.Query("tin")
	date := c.Query("date")

	transactions, err := s.reportSvc.Transactions(c.Request.Context(), tin, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (s *Server) GetXReport(c *gin.Context) {
	summary, err := s.reportSvc.XReport(c.Request.Context(), c.Query("tin"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type closeDayRequest struct {
	TIN  string `json:"tin"`
	Date string `json:"date"`
}

func (s *Server) CloseZReport(c *gin.Context) {
	var req closeDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	report, err := s.reportSvc.ZReport(c.Request.Context(), req.TIN, req.Date)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (s *Server) ListZReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	reports, err := s.reportSvc.ListZReports(c.Request.Context(), c.Query("tin"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
