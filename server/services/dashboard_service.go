package services

import (
	"fmt"

	"trafficdash/analytics"
	"trafficdash/database"
	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// DashboardService computes aggregate views over the violation store.
// Every call re-reads the store; nothing is cached between interactions.
type DashboardService struct {
	db *database.ViolationsDB
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(db *database.ViolationsDB) *DashboardService {
	return &DashboardService{db: db}
}

// Overview is the aggregate payload for the main dashboard view. All
// slices are empty (not an error) when the selection matches nothing.
type Overview struct {
	TotalRecords     int                       `json:"total_records"`
	SelectedRecords  int                       `json:"selected_records"`
	DateRange        *DateRange                `json:"date_range,omitempty"`
	Grouped          []analytics.GroupCount    `json:"grouped"`
	DailySeries      []analytics.DateCount     `json:"daily_series"`
	DailyByType      []analytics.DateTypeCount `json:"daily_by_type"`
	HourHistogram    [24]int                   `json:"hour_histogram"`
	VehicleTypes     []analytics.ValueCount    `json:"vehicle_types"`
	Lanes            []analytics.ValueCount    `json:"lanes"`
	Devices          []analytics.ValueCount    `json:"devices"`
}

// DateRange reports the stored data's calendar bounds.
type DateRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// GetOverview applies the session filters and computes every aggregate
// the dashboard renders.
func (s *DashboardService) GetOverview(filters analytics.Filters, groupDims []string) (*Overview, error) {
	all, err := s.db.QueryAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load violations: %w", err)
	}
	selected := filters.Apply(all)

	if len(groupDims) == 0 {
		groupDims = []string{
			analytics.DimViolationType,
			analytics.DimLocationCategory,
			analytics.DimProcessingStatus,
		}
	}
	grouped, err := analytics.GroupedCounts(selected, groupDims)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}

	overview := &Overview{
		TotalRecords:    len(all),
		SelectedRecords: len(selected),
		Grouped:         grouped,
		DailySeries:     analytics.DailySeries(selected),
		DailyByType:     analytics.DailyByType(selected),
		HourHistogram:   analytics.HourHistogram(selected),
		VehicleTypes:    analytics.VehicleTypeCounts(selected),
		Lanes:           analytics.LaneCounts(selected),
		Devices:         analytics.DeviceCounts(selected),
	}

	if min, max, ok, err := s.db.DateBounds(); err == nil && ok {
		overview.DateRange = &DateRange{
			Min: normalization.FormatDate(min),
			Max: normalization.FormatDate(max),
		}
	}

	return overview, nil
}

// GetDeviceAnomalies computes the rolling baseline over the full history
// and flags devices against the current selection. flaggedOnly narrows
// the response to flagged devices.
func (s *DashboardService) GetDeviceAnomalies(filters analytics.Filters, flaggedOnly bool) ([]analytics.DeviceStats, error) {
	all, err := s.db.QueryAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load violations: %w", err)
	}

	stats := analytics.DetectDeviceAnomalies(all, filters.Apply(all))
	if !flaggedOnly {
		return stats, nil
	}

	flagged := make([]analytics.DeviceStats, 0)
	for _, s := range stats {
		if s.Flagged {
			flagged = append(flagged, s)
		}
	}
	return flagged, nil
}

// GetDeviceDetail is the drill-down for one equipment code: its daily
// counts per violation type inside the selection.
func (s *DashboardService) GetDeviceDetail(filters analytics.Filters, equipmentCode string) ([]analytics.DateTypeCount, error) {
	all, err := s.db.QueryAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load violations: %w", err)
	}
	return analytics.DeviceDailyByType(filters.Apply(all), equipmentCode), nil
}

// FilterOptions returns the distinct values the filter widgets offer.
func (s *DashboardService) FilterOptions() (map[string][]string, error) {
	options := make(map[string][]string)
	for _, column := range []string{"violation_type", "processing_status", "location_category", "vehicle_type"} {
		values, err := s.db.DistinctValues(column)
		if err != nil {
			return nil, err
		}
		options[column] = values
	}
	return options, nil
}

// SelectedRecords returns the filtered record set, for export.
func (s *DashboardService) SelectedRecords(filters analytics.Filters) ([]database.ViolationRecord, error) {
	all, err := s.db.QueryAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load violations: %w", err)
	}
	return filters.Apply(all), nil
}
