package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"trafficdash/database"
	"trafficdash/normalization"
)

// ExportFormat is a supported download format.
type ExportFormat string

const (
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService renders the current filtered record set for download.
type ExportService struct{}

// NewExportService creates a new export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// Export renders records in the requested format and returns the bytes
// plus the response content type.
func (s *ExportService) Export(records []database.ViolationRecord, format ExportFormat) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := s.exportCSV(records)
		return data, "text/csv; charset=utf-8", err
	case FormatExcel:
		data, err := s.exportExcel(records)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", fmt.Errorf("unsupported export format: %q", format)
	}
}

// exportCSV writes the records with a UTF-8 byte-order mark so Excel on
// the operator desks detects the encoding.
func (s *ExportService) exportCSV(records []database.ViolationRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	if err := writer.Write(normalization.ViolationColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(recordRow(r)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) exportExcel(records []database.ViolationRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(normalization.ViolationColumns))
	for i, col := range normalization.ViolationColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		row := recordRow(r)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// recordRow renders a record in the source column order.
func recordRow(r database.ViolationRecord) []string {
	return []string{
		r.RecordID,
		r.ViolationType,
		r.ViolationTime.Format("2006-01-02 15:04:05"),
		strconv.Itoa(r.SpeedLimit),
		strconv.Itoa(r.ActualSpeed),
		strconv.Itoa(r.ActualExcess),
		strconv.Itoa(r.NotifiedSpeed),
		strconv.Itoa(r.NotifiedExcess),
		r.ProcessingStatus,
		strconv.Itoa(r.Lane),
		r.VehicleType,
		r.LocationCategory,
		r.ResidentCategory,
		r.VehicleModel,
		r.ViolationLocation,
	}
}
