package services

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"trafficdash/database"
	"trafficdash/importer"
	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// IngestService loads violation exports into the store.
type IngestService struct {
	db *database.ViolationsDB
}

// NewIngestService creates a new ingest service.
func NewIngestService(db *database.ViolationsDB) *IngestService {
	return &IngestService{db: db}
}

// IngestViolations parses an uploaded export and inserts its records.
// The format is chosen by file extension. Schema failures reject the
// whole file; nothing partial is ever written.
func (s *IngestService) IngestViolations(r io.Reader, filename string) (*database.InsertResult, error) {
	var records []database.ViolationRecord
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		records, err = importer.ParseViolationsExcel(r, filename)
	case ".csv", ".txt":
		records, err = importer.ParseViolationsCSV(r, filename)
	default:
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unsupported file format: %s", filepath.Ext(filename)), nil)
	}
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no usable records in %s", filename), nil)
	}

	result, err := s.db.InsertIgnore(records)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to store records", err)
	}

	log.Printf("Ingested %s: %d records, %d new, %d duplicates (%.1fs)",
		filename, result.Total, result.Inserted, result.Duplicate, result.Duration.Seconds())
	return result, nil
}

// IngestInventory parses and stages a device-inventory upload for one
// comparison source, replacing the previous upload for that source.
func (s *IngestService) IngestInventory(r io.Reader, source normalization.InventorySource, filename string) (int, error) {
	records, err := importer.ParseInventoryExcel(r, source, filename)
	if err != nil {
		return 0, apperrors.NewValidationError(err.Error(), err)
	}
	if len(records) == 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("no usable records in %s", filename), nil)
	}

	if err := s.db.ReplaceInventory(source, records); err != nil {
		return 0, apperrors.NewInternalError(fmt.Sprintf("failed to stage %s inventory", source), err)
	}

	log.Printf("Staged %s inventory from %s: %d devices", source, filename, len(records))
	return len(records), nil
}
