package importer

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"trafficdash/database"
	"trafficdash/normalization"
)

// ParseViolationsExcel parses a violation export spreadsheet. The first
// sheet must carry the full required column set; otherwise the whole file
// is rejected with a SchemaError and nothing is ingested.
func ParseViolationsExcel(r io.Reader, filename string) ([]database.ViolationRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return parseViolationRows(rows, filename)
}

func parseViolationRows(rows [][]string, filename string) ([]database.ViolationRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file is too short, expected at least header row and one data row")
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[normalization.NormalizeHeader(header)] = i
	}

	// Every canonical column is required, partial ingestion is not allowed.
	colIndex := make(map[string]int, len(normalization.ViolationColumns))
	var missing []string
	for _, col := range normalization.ViolationColumns {
		idx, ok := headerMap[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		colIndex[col] = idx
	}
	if len(missing) > 0 {
		return nil, &normalization.SchemaError{Source: filename, Missing: missing}
	}

	cell := func(row []string, col string) string {
		idx := colIndex[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	logInterval := 1000
	var records []database.ViolationRecord
	var skipped int

	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		recordID := cell(row, "일련번호")
		if recordID == "" {
			skipped++
			continue
		}

		ts, err := normalization.ParseTimestamp(cell(row, "위반일시"))
		if err != nil {
			log.Printf("Row %d: skipping record %s: %v", rowIdx+1, recordID, err)
			skipped++
			continue
		}

		records = append(records, database.ViolationRecord{
			RecordID:          recordID,
			ViolationType:     cell(row, "위반유형"),
			ViolationTime:     ts,
			SpeedLimit:        parseInt(cell(row, "제한속도")),
			ActualSpeed:       parseInt(cell(row, "실제주행속도")),
			ActualExcess:      parseInt(cell(row, "실제초과속도")),
			NotifiedSpeed:     parseInt(cell(row, "고지주행속도")),
			NotifiedExcess:    parseInt(cell(row, "고지초과속도")),
			ProcessingStatus:  cell(row, "처리상태"),
			Lane:              parseInt(cell(row, "위반차로")),
			VehicleType:       cell(row, "차종"),
			LocationCategory:  cell(row, "장소구분"),
			ResidentCategory:  cell(row, "주민구분"),
			VehicleModel:      cell(row, "차명"),
			ViolationLocation: cell(row, "위반장소"),
		})

		if len(records)%logInterval == 0 {
			log.Printf("Parsed %d rows from %s", len(records), filename)
		}
	}

	if skipped > 0 {
		log.Printf("Parsed %s: %d records, %d rows skipped", filename, len(records), skipped)
	}
	return records, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	// Exports occasionally carry unit suffixes or thousands separators
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "km/h")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
