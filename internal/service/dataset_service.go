package service

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-analytics/internal/dataset"
	"github.com/fleetops/fleet-analytics/internal/models"
)

// Upload is the raw content of one dataset upload, either individual
// delimited-text tables or a single workbook. Bytes, not readers, so
// the content fingerprint can be computed before parsing.
type Upload struct {
	Workbook []byte

	Trips      []byte
	Vehicles   []byte
	Drivers    []byte
	Operations []byte
	Geofence   []byte
}

// fingerprint derives the content identity of the upload.
func (u *Upload) fingerprint() string {
	return dataset.Fingerprint(u.Workbook, u.Trips, u.Vehicles, u.Drivers, u.Operations, u.Geofence)
}

// DatasetService ingests uploads into in-memory sessions.
type DatasetService struct {
	store *dataset.Store
	log   *logrus.Logger
}

// NewDatasetService creates a new dataset service.
func NewDatasetService(store *dataset.Store, log *logrus.Logger) *DatasetService {
	return &DatasetService{store: store, log: log}
}

// Ingest parses, normalizes and stores one upload. Identical content
// reuses the already-normalized snapshot via the store's
// content-addressed cache.
func (s *DatasetService) Ingest(upload *Upload) (*dataset.Session, error) {
	session, err := s.store.Add(upload.fingerprint(), func() (*models.NormalizedTables, error) {
		return s.normalize(upload)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"dataset": session.ID,
		"trips":   len(session.Tables.Trips),
	}).Info("dataset ingested")
	return session, nil
}

func (s *DatasetService) normalize(upload *Upload) (*models.NormalizedTables, error) {
	var raw dataset.RawTables
	var err error

	if len(upload.Workbook) > 0 {
		raw, err = dataset.ParseWorkbook(bytes.NewReader(upload.Workbook))
		if err != nil {
			return nil, err
		}
	} else {
		tables := []struct {
			name    string
			content []byte
			target  **dataset.RawTable
		}{
			{dataset.TableTrips, upload.Trips, &raw.Trips},
			{dataset.TableVehicles, upload.Vehicles, &raw.Vehicles},
			{dataset.TableDrivers, upload.Drivers, &raw.Drivers},
			{dataset.TableOperations, upload.Operations, &raw.Operations},
			{dataset.TableGeofence, upload.Geofence, &raw.Geofence},
		}
		for _, t := range tables {
			if len(t.content) == 0 {
				continue
			}
			*t.target, err = dataset.ParseCSV(bytes.NewReader(t.content))
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.name, err)
			}
		}
	}

	return dataset.Normalize(raw)
}

// Sessions returns all stored sessions ordered by creation time.
func (s *DatasetService) Sessions() []*dataset.Session {
	return s.store.List()
}

// Get returns one stored session.
func (s *DatasetService) Get(id string) (*dataset.Session, bool) {
	return s.store.Get(id)
}

// Discard deletes one stored session.
func (s *DatasetService) Discard(id string) bool {
	return s.store.Delete(id)
}
