package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficdash/database"
	"trafficdash/normalization"
)

func device(code, status, vendor string) database.InventoryRecord {
	return database.InventoryRecord{
		EquipmentCode:    code,
		OperatingStatus:  status,
		ControlType:      "과속단속",
		InstallLocation:  "강남대로 123",
		PoliceStation:    "강남경찰서",
		SpeedLimit:       "60",
		EnforcementSpeed: "70",
		InstallDate:      "2019-07-01",
		Vendor:           vendor,
	}
}

func TestCompare_AliasEqualInventoriesHaveNoDifferences(t *testing.T) {
	// Raw spellings differ on vendor and status, but both map to the same
	// canonical values, so the difference list must be empty.
	tcs := []database.InventoryRecord{device("F0001", "운영", "토페스")}
	tems := []database.InventoryRecord{device("F0001", "운영중", "(주)토페스")}

	report := Compare(tcs, tems)
	assert.Empty(t, report.Differences)
	require.Len(t, report.Joined, 1)
	assert.NotNil(t, report.Joined[0].TCS)
	assert.NotNil(t, report.Joined[0].TEMS)
}

func TestCompare_RealMismatchIsReported(t *testing.T) {
	tcs := []database.InventoryRecord{device("F0001", "운영", "토페스")}
	tems := []database.InventoryRecord{device("F0001", "운영", "렉스젠")}

	report := Compare(tcs, tems)
	require.Len(t, report.Differences, 1)

	diff := report.Differences[0]
	assert.Equal(t, "F0001", diff.EquipmentCode)
	require.Len(t, diff.Fields, 1)
	assert.Equal(t, normalization.FieldVendor, diff.Fields[0].Field)
	assert.Equal(t, "토페스", diff.Fields[0].TCSValue)
	assert.Equal(t, "렉스젠", diff.Fields[0].TEMSValue)
}

func TestOuterJoin_PreservesOneSideOnlyCodes(t *testing.T) {
	tcs := []database.InventoryRecord{device("F0001", "운영", "토페스")}
	tems := []database.InventoryRecord{device("G0002", "운영", "렉스젠")}

	joined := OuterJoin(tcs, tems)
	require.Len(t, joined, 2)

	assert.Equal(t, "F0001", joined[0].EquipmentCode)
	assert.NotNil(t, joined[0].TCS)
	assert.Nil(t, joined[0].TEMS)

	assert.Equal(t, "G0002", joined[1].EquipmentCode)
	assert.Nil(t, joined[1].TCS)
	assert.NotNil(t, joined[1].TEMS)
}

func TestDifferences_OneSideMissingReportedAsMissing(t *testing.T) {
	tcs := []database.InventoryRecord{device("F0001", "운영", "토페스")}
	var tems []database.InventoryRecord

	diffs := Differences(OuterJoin(tcs, tems))
	require.Len(t, diffs, 1)
	assert.Equal(t, "tems", diffs[0].MissingIn)
	assert.Empty(t, diffs[0].Fields)
}

func TestFilterDecommissioned_AppliedBeforeJoin(t *testing.T) {
	tcs := []database.InventoryRecord{
		device("F0001", "운영", "토페스"),
		device("F0009", "철거됨", "토페스"), // alias of decommissioned
	}
	tems := []database.InventoryRecord{device("F0001", "운영", "토페스")}

	report := Compare(tcs, tems)
	assert.Equal(t, 1, report.TCS.Total)
	require.Len(t, report.Joined, 1, "decommissioned devices must not reach the join")
	assert.Empty(t, report.Differences)
}

func TestFieldEqual_BothEmptyIsEqual(t *testing.T) {
	assert.True(t, fieldEqual(normalization.FieldVendor, "", ""))
	assert.False(t, fieldEqual(normalization.FieldVendor, "", "토페스"))
}

func TestSummarize_CanonicalStatusAndTypeCounts(t *testing.T) {
	records := []database.InventoryRecord{
		device("F0001", "운영", "토페스"),
		device("F0002", "운영중", "토페스"),
		device("F0003", "사용중지", "토페스"),
	}

	summary := Summarize(normalization.SourceTCS, records)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByStatus[normalization.StatusOperating], "aliases collapse in the summary")
	assert.Equal(t, 1, summary.ByStatus[normalization.StatusSuspended])
	assert.Equal(t, 3, summary.ByType[normalization.ControlSpeed])
}

func TestByField(t *testing.T) {
	diffs := []RowDiff{
		{EquipmentCode: "F0001", Fields: []FieldDiff{
			{Field: normalization.FieldVendor, TCSValue: "토페스", TEMSValue: "렉스젠"},
			{Field: normalization.FieldSpeedLimit, TCSValue: "60", TEMSValue: "50"},
		}},
		{EquipmentCode: "G0002", Fields: []FieldDiff{
			{Field: normalization.FieldSpeedLimit, TCSValue: "80", TEMSValue: "70"},
		}},
		{EquipmentCode: "H0003", MissingIn: "tcs"},
	}

	byVendor := ByField(diffs, normalization.FieldVendor)
	require.Len(t, byVendor, 1)
	assert.Equal(t, "F0001", byVendor[0].EquipmentCode)

	bySpeed := ByField(diffs, normalization.FieldSpeedLimit)
	assert.Len(t, bySpeed, 2)
}
