package services

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"trafficdash/database"
	"trafficdash/normalization"
)

func newTestDB(t *testing.T) *database.ViolationsDB {
	t.Helper()
	db, err := database.NewViolationsDB(filepath.Join(t.TempDir(), "violations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func violationWorkbook(t *testing.T, dataRows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	header := make([]interface{}, 0, len(normalization.ViolationColumns))
	for _, col := range normalization.ViolationColumns {
		header = append(header, col)
	}
	rows := append([][]interface{}{header}, dataRows...)
	return buildWorkbook(t, rows)
}

func violationRow(id, vtype, ts string) []interface{} {
	return []interface{}{
		id, vtype, ts, "60", "85", "25", "80", "20",
		"접수", "1", "승용차", "일반도로", "관내", "쏘나타", "서울 강남대로 123",
	}
}

func seedRecords(t *testing.T, db *database.ViolationsDB, records []database.ViolationRecord) {
	t.Helper()
	_, err := db.InsertIgnore(records)
	require.NoError(t, err)
}

func seedRecord(id, vtype string, ts time.Time) database.ViolationRecord {
	return database.ViolationRecord{
		RecordID:         id,
		ViolationType:    vtype,
		ViolationTime:    ts,
		SpeedLimit:       60,
		ActualSpeed:      85,
		ActualExcess:     25,
		ProcessingStatus: "접수",
		Lane:             1,
		VehicleType:      "승용차",
		LocationCategory: "일반도로",
		ResidentCategory: "관내",
		VehicleModel:     "쏘나타",
	}
}
