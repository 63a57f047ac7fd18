package analytics

import (
	"fmt"
	"sort"
	"strings"

	"trafficdash/database"
	"trafficdash/normalization"
)

// Groupable dimensions for GroupedCounts.
const (
	DimViolationType    = "violation_type"
	DimLocationCategory = "location_category"
	DimProcessingStatus = "processing_status"
)

// GroupCount is one row of a grouped-count summary.
type GroupCount struct {
	Keys  map[string]string `json:"keys"`
	Count int               `json:"count"`
}

// DateCount is one day of a daily series.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DateTypeCount is one (day, violation type) cell of the summary table.
type DateTypeCount struct {
	Date          string `json:"date"`
	ViolationType string `json:"violation_type"`
	Count         int    `json:"count"`
}

// ValueCount is a generic label/count pair.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupedCounts groups records by the requested dimensions and counts
// distinct record IDs per group.
func GroupedCounts(records []database.ViolationRecord, dims []string) ([]GroupCount, error) {
	for _, dim := range dims {
		switch dim {
		case DimViolationType, DimLocationCategory, DimProcessingStatus:
		default:
			return nil, fmt.Errorf("dimension %q is not groupable", dim)
		}
	}
	if len(dims) == 0 {
		dims = []string{DimViolationType}
	}

	type group struct {
		keys map[string]string
		ids  map[string]bool
	}
	groups := make(map[string]*group)

	for _, r := range records {
		keys := make(map[string]string, len(dims))
		parts := make([]string, 0, len(dims))
		for _, dim := range dims {
			var v string
			switch dim {
			case DimViolationType:
				v = r.ViolationType
			case DimLocationCategory:
				v = r.LocationCategory
			case DimProcessingStatus:
				v = r.ProcessingStatus
			}
			keys[dim] = v
			parts = append(parts, v)
		}
		id := strings.Join(parts, "\x1f")
		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys, ids: make(map[string]bool)}
			groups[id] = g
		}
		g.ids[r.RecordID] = true
	}

	out := make([]GroupCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupCount{Keys: g.keys, Count: len(g.ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		for _, dim := range dims {
			if out[i].Keys[dim] != out[j].Keys[dim] {
				return out[i].Keys[dim] < out[j].Keys[dim]
			}
		}
		return false
	})
	return out, nil
}

// DailySeries counts distinct records per calendar date.
func DailySeries(records []database.ViolationRecord) []DateCount {
	counts := make(map[string]map[string]bool)
	for _, r := range records {
		date := normalization.FormatDate(r.Date())
		if counts[date] == nil {
			counts[date] = make(map[string]bool)
		}
		counts[date][r.RecordID] = true
	}

	out := make([]DateCount, 0, len(counts))
	for date, ids := range counts {
		out = append(out, DateCount{Date: date, Count: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DailyByType counts distinct records per (date, violation type) pair.
func DailyByType(records []database.ViolationRecord) []DateTypeCount {
	type key struct{ date, vtype string }
	counts := make(map[key]map[string]bool)
	for _, r := range records {
		k := key{normalization.FormatDate(r.Date()), r.ViolationType}
		if counts[k] == nil {
			counts[k] = make(map[string]bool)
		}
		counts[k][r.RecordID] = true
	}

	out := make([]DateTypeCount, 0, len(counts))
	for k, ids := range counts {
		out = append(out, DateTypeCount{Date: k.date, ViolationType: k.vtype, Count: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ViolationType < out[j].ViolationType
	})
	return out
}

// HourHistogram counts violations per hour of day, 0 through 23.
func HourHistogram(records []database.ViolationRecord) [24]int {
	var hist [24]int
	for _, r := range records {
		hist[r.ViolationTime.Hour()]++
	}
	return hist
}

// LaneCounts counts violations per lane.
func LaneCounts(records []database.ViolationRecord) []ValueCount {
	return countBy(records, func(r database.ViolationRecord) string {
		return fmt.Sprintf("%d", r.Lane)
	})
}

// VehicleTypeCounts counts violations per vehicle type.
func VehicleTypeCounts(records []database.ViolationRecord) []ValueCount {
	return countBy(records, func(r database.ViolationRecord) string { return r.VehicleType })
}

// DeviceCounts counts violations per equipment code.
func DeviceCounts(records []database.ViolationRecord) []ValueCount {
	return countBy(records, func(r database.ViolationRecord) string { return r.EquipmentCode() })
}

func countBy(records []database.ViolationRecord, key func(database.ViolationRecord) string) []ValueCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
