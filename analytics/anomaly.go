package analytics

import (
	"math"
	"sort"
	"time"

	"trafficdash/database"
	"trafficdash/normalization"
)

// anomalyWindow is the trailing rolling window, in days, used for the
// per-device baseline.
const anomalyWindow = 7

// anomalySigma is the number of standard deviations above the rolling
// mean at which a device is flagged.
const anomalySigma = 2.0

// DeviceStats is the anomaly assessment for one enforcement device.
// Threshold is nil when the device has fewer than anomalyWindow days of
// history; such devices are never flagged.
type DeviceStats struct {
	EquipmentCode string   `json:"equipment_code"`
	HistoryDays   int      `json:"history_days"`
	SelectedCount int      `json:"selected_count"`
	RollingMean   float64  `json:"rolling_mean"`
	RollingStdDev float64  `json:"rolling_stddev"`
	Threshold     *float64 `json:"threshold,omitempty"`
	Flagged       bool     `json:"flagged"`
}

// DetectDeviceAnomalies computes per-device rolling baselines over the
// full unfiltered history and flags devices whose count inside the
// current selection exceeds mean + 2·stddev of the most recent completed
// 7-day window.
//
// The baseline window and the selection may overlap; the original
// operator workflow compared the filtered subset against all-history
// baselines without excluding the overlap, and that behavior is kept.
func DetectDeviceAnomalies(history, selected []database.ViolationRecord) []DeviceStats {
	if len(history) == 0 {
		return nil
	}

	// Per-device daily counts plus each device's first observed date.
	daily := make(map[string]map[string]int)
	firstSeen := make(map[string]time.Time)
	var maxDate time.Time
	for _, r := range history {
		code := r.EquipmentCode()
		date := r.Date()
		if daily[code] == nil {
			daily[code] = make(map[string]int)
		}
		daily[code][normalization.FormatDate(date)]++
		if first, ok := firstSeen[code]; !ok || date.Before(first) {
			firstSeen[code] = date
		}
		if date.After(maxDate) {
			maxDate = date
		}
	}

	selectedCounts := make(map[string]int)
	for _, r := range selected {
		selectedCounts[r.EquipmentCode()]++
	}

	codes := make([]string, 0, len(daily))
	for code := range daily {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]DeviceStats, 0, len(codes))
	for _, code := range codes {
		stats := DeviceStats{
			EquipmentCode: code,
			SelectedCount: selectedCounts[code],
		}

		// Series spans from the device's first record through the most
		// recent date anywhere in history; silent days count as zero.
		span := int(maxDate.Sub(firstSeen[code]).Hours()/24) + 1
		stats.HistoryDays = span

		if span >= anomalyWindow {
			series := make([]float64, 0, anomalyWindow)
			for d := anomalyWindow - 1; d >= 0; d-- {
				date := normalization.FormatDate(maxDate.AddDate(0, 0, -d))
				series = append(series, float64(daily[code][date]))
			}
			mean, stddev := meanStdDev(series)
			threshold := mean + anomalySigma*stddev
			stats.RollingMean = mean
			stats.RollingStdDev = stddev
			stats.Threshold = &threshold
			stats.Flagged = float64(stats.SelectedCount) > threshold
		}

		out = append(out, stats)
	}
	return out
}

// meanStdDev returns the mean and sample standard deviation of values.
func meanStdDev(values []float64) (float64, float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	if n < 2 {
		return mean, 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / (n - 1))
}

// DeviceDailyByType is the per-device drill-down: daily counts per
// violation type for one equipment code.
func DeviceDailyByType(records []database.ViolationRecord, equipmentCode string) []DateTypeCount {
	var subset []database.ViolationRecord
	for _, r := range records {
		if r.EquipmentCode() == equipmentCode {
			subset = append(subset, r)
		}
	}
	return DailyByType(subset)
}
