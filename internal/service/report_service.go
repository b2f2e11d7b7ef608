// Package service wires the dataset store to the report engine.
package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-analytics/internal/dataset"
	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
	"github.com/fleetops/fleet-analytics/internal/exporter"
	"github.com/fleetops/fleet-analytics/internal/models"
	"github.com/fleetops/fleet-analytics/internal/report"
)

// ErrDatasetNotFound marks a request for a discarded or unknown
// dataset session.
var ErrDatasetNotFound = apperrors.MissingRequiredInput("dataset")

// ReportService runs analyses against stored dataset sessions.
type ReportService struct {
	store *dataset.Store
	log   *logrus.Logger
}

// NewReportService creates a new report service.
func NewReportService(store *dataset.Store, log *logrus.Logger) *ReportService {
	return &ReportService{store: store, log: log}
}

// Analyses lists the fixed set of report definitions.
func (s *ReportService) Analyses() []*report.Definition {
	return report.Definitions()
}

// Run executes one analysis against one dataset session.
func (s *ReportService) Run(datasetID, analysisID string) (*models.ReportResult, *report.Definition, error) {
	session, ok := s.store.Get(datasetID)
	if !ok {
		return nil, nil, ErrDatasetNotFound
	}

	started := time.Now()
	result, def, err := report.Dispatch(analysisID, session.Tables, time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"dataset":  datasetID,
			"analysis": analysisID,
		}).WithError(err).Warn("report failed")
		return nil, def, err
	}

	s.log.WithFields(logrus.Fields{
		"dataset":  datasetID,
		"analysis": analysisID,
		"rows":     result.Table.Len(),
		"elapsed":  time.Since(started),
	}).Info("report computed")
	return result, def, nil
}

// Export runs one analysis and renders its primary table as CSV,
// returning the fixed per-analysis filename alongside the bytes.
func (s *ReportService) Export(datasetID, analysisID string) (string, []byte, error) {
	result, def, err := s.Run(datasetID, analysisID)
	if err != nil {
		return "", nil, err
	}

	data, err := exporter.EncodeTable(&result.Table)
	if err != nil {
		return "", nil, err
	}
	return def.Filename, data, nil
}
