package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-analytics/internal/service"
	"github.com/fleetops/fleet-analytics/pkg/response"
)

// ReportHandler handles HTTP requests for report computation
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// fail maps service errors to responses; a missing dataset session is
// a 404, engine failures follow the taxonomy mapping.
func (h *ReportHandler) fail(c *gin.Context, err error) {
	if err == service.ErrDatasetNotFound {
		response.NotFound(c, "dataset not found")
		return
	}
	response.FromError(c, err)
}

// List handles GET /api/v1/datasets/:id/reports and returns the fixed
// menu of analyses.
func (h *ReportHandler) List(c *gin.Context) {
	response.Success(c, h.reports.Analyses())
}

// Run handles GET /api/v1/datasets/:id/reports/:analysis and returns
// the full result bundle: table, auxiliary tables, metrics and chart
// specifications.
func (h *ReportHandler) Run(c *gin.Context) {
	result, def, err := h.reports.Run(c.Param("id"), c.Param("analysis"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, gin.H{
		"analysis": def.Kind,
		"title":    def.Title,
		"result":   result,
	})
}

// Export handles GET /api/v1/datasets/:id/reports/:analysis/export and
// streams the primary table as a CSV attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	filename, data, err := h.reports.Export(c.Param("id"), c.Param("analysis"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
