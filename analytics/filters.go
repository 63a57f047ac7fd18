package analytics

import (
	"time"

	"trafficdash/database"
	"trafficdash/normalization"
)

// Filters is the session-scoped selection applied to every aggregation.
// Nil/empty slices mean "no restriction" on that dimension.
type Filters struct {
	Start              *time.Time `json:"start,omitempty"`
	End                *time.Time `json:"end,omitempty"`
	ViolationTypes     []string   `json:"violation_types,omitempty"`
	ProcessingStatuses []string   `json:"processing_statuses,omitempty"`
	LocationCategories []string   `json:"location_categories,omitempty"`
}

// Apply returns the records matching the selection. An empty result is a
// valid state, not an error; downstream aggregations simply come out empty.
func (f Filters) Apply(records []database.ViolationRecord) []database.ViolationRecord {
	types := toSet(f.ViolationTypes)
	statuses := toSet(f.ProcessingStatuses)
	locations := toSet(f.LocationCategories)

	var out []database.ViolationRecord
	for _, r := range records {
		if f.Start != nil && r.Date().Before(normalization.DateOnly(*f.Start)) {
			continue
		}
		if f.End != nil && r.Date().After(normalization.DateOnly(*f.End)) {
			continue
		}
		if types != nil && !types[r.ViolationType] {
			continue
		}
		if statuses != nil && !statuses[r.ProcessingStatus] {
			continue
		}
		if locations != nil && !locations[r.LocationCategory] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
