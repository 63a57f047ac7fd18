package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficdash/normalization"
)

func tcsHeaderRow() []interface{} {
	return []interface{}{"장비코드", "운영상태", "단속유형", "설치장소", "관할경찰서", "제한속도", "단속속도", "설치일자", "설치업체"}
}

func temsHeaderRow() []interface{} {
	return []interface{}{"장비번호", "상태", "단속구분", "설치위치", "관할서", "제한속도(km/h)", "단속기준속도", "설치일", "업체명"}
}

func TestParseInventoryExcel_TCS(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		tcsHeaderRow(),
		{"F0001", "운영", "과속단속", "강남대로 123", "강남경찰서", "60", "70", "2019-07-01", "(주)토페스"},
	})

	records, err := ParseInventoryExcel(buf, normalization.SourceTCS, "tcs.xlsx")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "F0001", r.EquipmentCode)
	assert.Equal(t, "운영", r.OperatingStatus)
	assert.Equal(t, "(주)토페스", r.Vendor, "raw vendor spelling is preserved until comparison")
	assert.Equal(t, "2019-07-01", r.InstallDate)
}

func TestParseInventoryExcel_TEMSRenamesAndDateOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		temsHeaderRow(),
		{"F0001", "운영중", "과속", "강남대로 123", "강남서", "60", "70", "2019.07.01 09:30:00", "토페스"},
	})

	records, err := ParseInventoryExcel(buf, normalization.SourceTEMS, "tems.xlsx")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "F0001", r.EquipmentCode)
	assert.Equal(t, "운영중", r.OperatingStatus)
	assert.Equal(t, "2019-07-01", r.InstallDate, "time of day must be discarded for inventories")
}

func TestParseInventoryExcel_WrongSourceSchema(t *testing.T) {
	// A TEMS file parsed as TCS cannot map any canonical column.
	buf := buildWorkbook(t, [][]interface{}{
		temsHeaderRow(),
		{"F0001", "운영중", "과속", "강남대로 123", "강남서", "60", "70", "2019-07-01", "토페스"},
	})

	_, err := ParseInventoryExcel(buf, normalization.SourceTCS, "tems.xlsx")
	require.Error(t, err)

	var schemaErr *normalization.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, normalization.FieldEquipmentCode)
}

func TestParseInventoryExcel_SkipsRowsWithoutCode(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		tcsHeaderRow(),
		{"", "운영", "과속단속", "강남대로 123", "강남경찰서", "60", "70", "2019-07-01", "토페스"},
		{"F0002", "운영", "과속단속", "테헤란로 5", "강남경찰서", "50", "60", "2020-01-15", "렉스젠"},
	})

	records, err := ParseInventoryExcel(buf, normalization.SourceTCS, "tcs.xlsx")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "F0002", records[0].EquipmentCode)
}
