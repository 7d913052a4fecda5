package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) HandleInvoiceWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.invoicingSvc.ProcessInvoice(c.Request.Context(), payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) HandleCreditNoteWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.invoicingSvc.ProcessCreditNote(c.Request.Context(), payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadReceipt serves a rendered receipt PDF. The filename is pinned to
// its base name so the handler cannot escape the output directory.
func (s *Server) DownloadReceipt(c *gin.Context) {
	filename := c.Param("filename")
	if filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".pdf") {
		AbortWithError(c, ErrNotFound)
		return
	}

	path := filepath.Join(s.cfg.PDF.OutputDir, filename)
	if !fileExists(path) {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.FileAttachment(path, filename)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
