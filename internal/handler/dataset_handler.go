package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/service"
	"github.com/fleetops/fleet-analytics/pkg/response"
)

// DatasetHandler handles HTTP requests for dataset sessions
type DatasetHandler struct {
	datasets *service.DatasetService
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasets *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasets: datasets}
}

// readPart reads one optional multipart file field.
func readPart(form *multipart.Form, field string) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Upload handles POST /api/v1/datasets. The request is multipart:
// either a single "workbook" xlsx file, or per-table CSV files named
// trips, vehicles, drivers, operations, geofence.
func (h *DatasetHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "expected multipart form upload")
		return
	}

	upload := &service.Upload{}
	fields := []struct {
		name   string
		target *[]byte
	}{
		{"workbook", &upload.Workbook},
		{"trips", &upload.Trips},
		{"vehicles", &upload.Vehicles},
		{"drivers", &upload.Drivers},
		{"operations", &upload.Operations},
		{"geofence", &upload.Geofence},
	}
	for _, f := range fields {
		if *f.target, err = readPart(form, f.name); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	session, err := h.datasets.Ingest(upload)
	if err != nil {
		if apperrors.IsMissingRequiredInput(err) || apperrors.IsMalformedColumn(err) {
			response.FromError(c, err)
		} else {
			response.BadRequest(c, err.Error())
		}
		return
	}

	tables := session.Tables
	response.Success(c, gin.H{
		"dataset_id": session.ID,
		"created_at": session.CreatedAt,
		"row_counts": gin.H{
			"trips":      len(tables.Trips),
			"vehicles":   len(tables.Vehicles),
			"drivers":    len(tables.Drivers),
			"operations": len(tables.Operations),
			"geofence":   len(tables.Geofence),
		},
		"warnings": tables.Warnings,
	})
}

// List handles GET /api/v1/datasets and returns the stored sessions.
func (h *DatasetHandler) List(c *gin.Context) {
	response.Success(c, h.datasets.Sessions())
}

// Delete handles DELETE /api/v1/datasets/:id and discards the session.
func (h *DatasetHandler) Delete(c *gin.Context) {
	if !h.datasets.Discard(c.Param("id")) {
		response.NotFound(c, "dataset not found")
		return
	}
	response.Success(c, nil)
}
