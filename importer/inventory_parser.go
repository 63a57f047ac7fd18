package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"trafficdash/database"
	"trafficdash/normalization"
)

// ParseInventoryExcel parses a device-inventory export for one source,
// renaming its columns onto the canonical schema. Install dates are cut
// down to calendar dates; time-of-day carries no meaning for inventories.
func ParseInventoryExcel(r io.Reader, source normalization.InventorySource, filename string) ([]database.InventoryRecord, error) {
	renames, err := normalization.RenameMap(source)
	if err != nil {
		return nil, err
	}

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
	if len(rows) < 2 {
		return nil, fmt.Errorf("file is too short, expected at least header row and one data row")
	}

	// Resolve each canonical field to a source column through the rename map.
	fieldIndex := make(map[string]int, len(normalization.InventoryFields))
	for i, header := range rows[0] {
		if canonical, ok := renames[normalization.NormalizeHeader(header)]; ok {
			fieldIndex[canonical] = i
		}
	}

	var missing []string
	for _, field := range normalization.InventoryFields {
		if _, ok := fieldIndex[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &normalization.SchemaError{Source: filename, Missing: missing}
	}

	var records []database.InventoryRecord
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		var r database.InventoryRecord
		for field, idx := range fieldIndex {
			if idx >= len(row) {
				continue
			}
			r.SetField(field, strings.TrimSpace(row[idx]))
		}
		if r.EquipmentCode == "" {
			continue
		}

		if r.InstallDate != "" {
			if d, err := normalization.ParseDate(r.InstallDate); err == nil {
				r.InstallDate = normalization.FormatDate(d)
			}
		}

		records = append(records, r)
	}

	return records, nil
}
