package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estoqueops/estqop/internal/domain"
	"github.com/estoqueops/estqop/internal/service"
)

type RunHandler struct {
	service *service.RunService
}

func NewRunHandler(service *service.RunService) *RunHandler {
	return &RunHandler{service: service}
}

func (h *RunHandler) parseFilter(c *gin.Context) (*domain.RunFilter, bool) {
	filter := &domain.RunFilter{
		Page:     1,
		PageSize: 20,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = strings.ToLower(status)
	}

	parseDate := func(param string) (*time.Time, bool) {
		value := strings.TrimSpace(c.Query(param))
		if value == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "param": param, "details": err.Error()})
			return nil, false
		}
		return &t, true
	}

	from, ok := parseDate("from")
	if !ok {
		return nil, false
	}
	filter.From = from

	to, ok := parseDate("to")
	if !ok {
		return nil, false
	}
	if to != nil {
		// Inclusive upper bound: runs started any time on the "to" day match.
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	return filter, true
}

// GetRuns lists run records with optional status and date filters
func (h *RunHandler) GetRuns(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	runs, total, err := h.service.GetRuns(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch runs", "details": err.Error()})
		return
	}
	if runs == nil {
		runs = make([]domain.RunSummary, 0)
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// GetRun returns one run record by ID
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch run", "details": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetStats returns the run-history dashboard aggregates
func (h *RunHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportRuns streams the filtered run history as a CSV download
func (h *RunHandler) ExportRuns(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="runs.csv"`)

	if err := h.service.ExportRunsCSV(c.Request.Context(), c.Writer, filter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export runs", "details": err.Error()})
		return
	}
}
