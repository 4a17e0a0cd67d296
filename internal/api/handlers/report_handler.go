// internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estoqueops/estqop/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ListReports returns the report files present in the output directory
func (h *ReportHandler) ListReports(c *gin.Context) {
	infos, err := h.service.ListReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": infos})
}

// GetReport serves one report file verbatim
func (h *ReportHandler) GetReport(c *gin.Context) {
	name := c.Param("name")

	payload, err := h.service.GetReport(c.Request.Context(), name)
	if errors.Is(err, service.ErrUnknownReport) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report", "name": name})
		return
	}
	if errors.Is(err, service.ErrReportNotReady) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not generated yet", "name": name})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read report", "details": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", payload)
}

// Preview reconciles the current input files in memory and returns the
// derived tables without touching the report files
func (h *ReportHandler) Preview(c *gin.Context) {
	result, err := h.service.Preview(c.Request.Context())
	if errors.Is(err, service.ErrInputMissing) {
		c.JSON(http.StatusNotFound, gin.H{"error": "input files not found", "details": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid input files", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
