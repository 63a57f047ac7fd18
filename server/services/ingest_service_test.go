package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficdash/normalization"
)

func TestIngestViolations_ExcelRoundTrip(t *testing.T) {
	db := newTestDB(t)
	service := NewIngestService(db)

	buf := violationWorkbook(t,
		violationRow("F00010001", "과속", "2024-03-10 08:15:00"),
		violationRow("G00020001", "과속", "2024-03-11 09:30:00"),
	)

	result, err := service.IngestViolations(buf, "upload.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	// Re-ingesting the same file is a no-op, not an error.
	buf = violationWorkbook(t,
		violationRow("F00010001", "과속", "2024-03-10 08:15:00"),
		violationRow("G00020001", "과속", "2024-03-11 09:30:00"),
	)
	result, err = service.IngestViolations(buf, "upload.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Duplicate)

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIngestViolations_CSV(t *testing.T) {
	db := newTestDB(t)
	service := NewIngestService(db)

	csv := strings.Join(normalization.ViolationColumns, ",") + "\n" +
		"F00010001,과속,2024-03-10 08:15:00,60,85,25,80,20,접수,1,승용차,일반도로,관내,쏘나타,강남대로 123\n"

	result, err := service.IngestViolations(strings.NewReader(csv), "upload.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
}

func TestIngestViolations_UnsupportedFormat(t *testing.T) {
	service := NewIngestService(newTestDB(t))
	_, err := service.IngestViolations(strings.NewReader(""), "upload.pdf")
	assert.Error(t, err)
}

func TestIngestViolations_SchemaErrorWritesNothing(t *testing.T) {
	db := newTestDB(t)
	service := NewIngestService(db)

	// Header missing the record-id column.
	header := make([]interface{}, 0)
	for _, col := range normalization.ViolationColumns[1:] {
		header = append(header, col)
	}
	buf := buildWorkbook(t, [][]interface{}{header, violationRow("F00010001", "과속", "2024-03-10 08:15:00")[1:]})

	_, err := service.IngestViolations(buf, "broken.xlsx")
	require.Error(t, err)
	var schemaErr *normalization.SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "a rejected file must not write any rows")
}

func TestIngestInventory_StagesSource(t *testing.T) {
	db := newTestDB(t)
	service := NewIngestService(db)

	buf := buildWorkbook(t, [][]interface{}{
		{"장비코드", "운영상태", "단속유형", "설치장소", "관할경찰서", "제한속도", "단속속도", "설치일자", "설치업체"},
		{"F0001", "운영", "과속단속", "강남대로 123", "강남경찰서", "60", "70", "2019-07-01", "(주)토페스"},
	})

	n, err := service.IngestInventory(buf, normalization.SourceTCS, "tcs.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	staged, err := db.LoadInventory(normalization.SourceTCS)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, "F0001", staged[0].EquipmentCode)
}
