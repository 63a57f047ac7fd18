package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficdash/database"
)

func record(id, vtype, status, location string, ts time.Time) database.ViolationRecord {
	return database.ViolationRecord{
		RecordID:         id,
		ViolationType:    vtype,
		ProcessingStatus: status,
		LocationCategory: location,
		ViolationTime:    ts,
		VehicleType:      "승용차",
		Lane:             1,
	}
}

func TestGroupedCounts_SumEqualsTotal(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", ts),
		record("F00010002", "과속", "처리완료", "일반도로", ts),
		record("F00010003", "신호위반", "접수", "어린이보호구역", ts),
		record("G00020001", "과속", "접수", "일반도로", ts),
	}

	groups, err := GroupedCounts(records, []string{DimViolationType})
	require.NoError(t, err)

	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, len(records), total, "per-type counts must sum to the distinct record total")
}

func TestGroupedCounts_MultiDimension(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", ts),
		record("F00010002", "과속", "접수", "일반도로", ts),
		record("F00010003", "과속", "처리완료", "일반도로", ts),
	}

	groups, err := GroupedCounts(records, []string{DimViolationType, DimProcessingStatus})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "접수", groups[0].Keys[DimProcessingStatus])
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "처리완료", groups[1].Keys[DimProcessingStatus])
	assert.Equal(t, 1, groups[1].Count)
}

func TestGroupedCounts_DuplicateIDsCountedOnce(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", ts),
		record("F00010001", "과속", "접수", "일반도로", ts),
	}

	groups, err := GroupedCounts(records, []string{DimViolationType})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Count)
}

func TestGroupedCounts_UnknownDimension(t *testing.T) {
	_, err := GroupedCounts(nil, []string{"vehicle_model"})
	assert.Error(t, err)
}

func TestDailySeries_EndToEndScenario(t *testing.T) {
	// Three records, one violation type, spanning two calendar days.
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
		record("F00010002", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)),
		record("G00020001", "과속", "접수", "일반도로", time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)),
	}

	series := DailySeries(records)
	require.Len(t, series, 2)
	assert.Equal(t, DateCount{Date: "2024-03-10", Count: 2}, series[0])
	assert.Equal(t, DateCount{Date: "2024-03-11", Count: 1}, series[1])

	devices := DeviceCounts(records)
	require.Len(t, devices, 2)
	assert.Equal(t, ValueCount{Value: "F0001", Count: 2}, devices[0])
	assert.Equal(t, ValueCount{Value: "G0002", Count: 1}, devices[1])
}

func TestHourHistogram(t *testing.T) {
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 8, 15, 0, 0, time.UTC)),
		record("F00010002", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 8, 45, 0, 0, time.UTC)),
		record("F00010003", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)),
	}

	hist := HourHistogram(records)
	assert.Equal(t, 2, hist[8])
	assert.Equal(t, 1, hist[23])
	assert.Equal(t, 0, hist[12])
}

func TestDailyByType(t *testing.T) {
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)),
		record("F00010002", "신호위반", "접수", "일반도로", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
		record("F00010003", "과속", "접수", "일반도로", time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)),
	}

	cells := DailyByType(records)
	require.Len(t, cells, 3)
	assert.Equal(t, DateTypeCount{Date: "2024-03-10", ViolationType: "과속", Count: 1}, cells[0])
	assert.Equal(t, DateTypeCount{Date: "2024-03-10", ViolationType: "신호위반", Count: 1}, cells[1])
	assert.Equal(t, DateTypeCount{Date: "2024-03-11", ViolationType: "과속", Count: 1}, cells[2])
}

func TestFilters_Apply(t *testing.T) {
	mar10 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mar11 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", mar10.Add(9*time.Hour)),
		record("F00010002", "신호위반", "접수", "일반도로", mar10.Add(10*time.Hour)),
		record("F00010003", "과속", "접수", "일반도로", mar11.Add(11*time.Hour)),
	}

	filtered := Filters{
		Start:          &mar10,
		End:            &mar10,
		ViolationTypes: []string{"과속"},
	}.Apply(records)

	require.Len(t, filtered, 1)
	assert.Equal(t, "F00010001", filtered[0].RecordID)
}

func TestFilters_EmptySelectionYieldsEmptyAggregates(t *testing.T) {
	mar01 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []database.ViolationRecord{
		record("F00010001", "과속", "접수", "일반도로", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}

	filtered := Filters{Start: &mar01, End: &mar01}.Apply(records)
	assert.Empty(t, filtered)

	// Empty selection is a valid state, every aggregation comes out empty.
	assert.Empty(t, DailySeries(filtered))
	assert.Empty(t, DeviceCounts(filtered))
	groups, err := GroupedCounts(filtered, []string{DimViolationType})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestValueCounts_OrderedByCountDesc(t *testing.T) {
	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	var records []database.ViolationRecord
	for i := 0; i < 3; i++ {
		r := record(fmt.Sprintf("F0001%04d", i), "과속", "접수", "일반도로", ts)
		r.VehicleType = "화물차"
		records = append(records, r)
	}
	r := record("G00020001", "과속", "접수", "일반도로", ts)
	r.VehicleType = "승용차"
	records = append(records, r)

	counts := VehicleTypeCounts(records)
	require.Len(t, counts, 2)
	assert.Equal(t, "화물차", counts[0].Value)
	assert.Equal(t, 3, counts[0].Count)
}
