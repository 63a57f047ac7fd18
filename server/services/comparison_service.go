package services

import (
	"fmt"

	"trafficdash/comparison"
	"trafficdash/database"
	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// ComparisonService reconciles the staged TCS and TEMS inventories.
type ComparisonService struct {
	db *database.ViolationsDB
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(db *database.ViolationsDB) *ComparisonService {
	return &ComparisonService{db: db}
}

// Compare loads both staged inventories and runs the full reconciliation.
// Both sources must have been uploaded first.
func (s *ComparisonService) Compare() (*comparison.Report, error) {
	tcs, err := s.db.LoadInventory(normalization.SourceTCS)
	if err != nil {
		return nil, err
	}
	tems, err := s.db.LoadInventory(normalization.SourceTEMS)
	if err != nil {
		return nil, err
	}
	if len(tcs) == 0 || len(tems) == 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("both inventories must be uploaded before comparing (tcs: %d, tems: %d)", len(tcs), len(tems)), nil)
	}

	report := comparison.Compare(tcs, tems)
	return &report, nil
}

// DifferencesByField narrows the difference list to one compared field.
func (s *ComparisonService) DifferencesByField(field string) ([]comparison.RowDiff, error) {
	valid := false
	for _, f := range comparison.ComparedFields {
		if f == field {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperrors.NewValidationError(fmt.Sprintf("field %q is not compared", field), nil)
	}

	report, err := s.Compare()
	if err != nil {
		return nil, err
	}
	return comparison.ByField(report.Differences, field), nil
}
