// Package comparison reconciles the two independently maintained device
// inventories (TCS and TEMS). Records are joined by equipment code and
// compared field by field after alias normalization; spelling variants
// that map to the same canonical value are not mismatches.
package comparison

import (
	"sort"

	"trafficdash/database"
	"trafficdash/normalization"
)

// ComparedFields are the canonical fields checked for mismatches between
// the two sources. Equipment code is the join key, not a compared field.
var ComparedFields = []string{
	normalization.FieldOperatingStatus,
	normalization.FieldControlType,
	normalization.FieldInstallLocation,
	normalization.FieldPoliceStation,
	normalization.FieldSpeedLimit,
	normalization.FieldEnforcementSpeed,
	normalization.FieldInstallDate,
	normalization.FieldVendor,
}

// JoinedRow is one outer-join row. A side missing the equipment code has
// a nil record.
type JoinedRow struct {
	EquipmentCode string                    `json:"equipment_code"`
	TCS           *database.InventoryRecord `json:"tcs,omitempty"`
	TEMS          *database.InventoryRecord `json:"tems,omitempty"`
}

// FieldDiff is one mismatching field of a joined row. Raw values are
// reported so the operator can see the original spellings.
type FieldDiff struct {
	Field     string `json:"field"`
	TCSValue  string `json:"tcs_value"`
	TEMSValue string `json:"tems_value"`
}

// RowDiff collects the differing fields of one equipment code.
type RowDiff struct {
	EquipmentCode string      `json:"equipment_code"`
	MissingIn     string      `json:"missing_in,omitempty"` // "tcs" or "tems" when one side is absent
	Fields        []FieldDiff `json:"fields,omitempty"`
}

// SourceSummary is the per-status-and-type count breakdown of one source.
type SourceSummary struct {
	Source   normalization.InventorySource `json:"source"`
	Total    int                           `json:"total"`
	ByStatus map[string]int                `json:"by_status"`
	ByType   map[string]int                `json:"by_type"`
}

// Report is the full comparison output.
type Report struct {
	TCS         SourceSummary `json:"tcs_summary"`
	TEMS        SourceSummary `json:"tems_summary"`
	Joined      []JoinedRow   `json:"joined"`
	Differences []RowDiff     `json:"differences"`
}

// FilterDecommissioned drops devices whose alias-normalized operating
// status is decommissioned. Applied to both sides before the join.
func FilterDecommissioned(records []database.InventoryRecord) []database.InventoryRecord {
	out := make([]database.InventoryRecord, 0, len(records))
	for _, r := range records {
		status := normalization.CanonicalValue(normalization.FieldOperatingStatus, r.OperatingStatus)
		if status == normalization.StatusDecommissioned {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize counts records per canonical operating status and control type.
func Summarize(source normalization.InventorySource, records []database.InventoryRecord) SourceSummary {
	summary := SourceSummary{
		Source:   source,
		Total:    len(records),
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}
	for _, r := range records {
		summary.ByStatus[normalization.CanonicalValue(normalization.FieldOperatingStatus, r.OperatingStatus)]++
		summary.ByType[normalization.CanonicalValue(normalization.FieldControlType, r.ControlType)]++
	}
	return summary
}

// OuterJoin joins the two inventories by equipment code. Codes present in
// only one source are retained with a nil record on the other side.
func OuterJoin(tcs, tems []database.InventoryRecord) []JoinedRow {
	tcsByCode := make(map[string]*database.InventoryRecord, len(tcs))
	for i := range tcs {
		tcsByCode[tcs[i].EquipmentCode] = &tcs[i]
	}
	temsByCode := make(map[string]*database.InventoryRecord, len(tems))
	for i := range tems {
		temsByCode[tems[i].EquipmentCode] = &tems[i]
	}

	codes := make(map[string]bool, len(tcsByCode)+len(temsByCode))
	for code := range tcsByCode {
		codes[code] = true
	}
	for code := range temsByCode {
		codes[code] = true
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	rows := make([]JoinedRow, 0, len(sorted))
	for _, code := range sorted {
		rows = append(rows, JoinedRow{
			EquipmentCode: code,
			TCS:           tcsByCode[code],
			TEMS:          temsByCode[code],
		})
	}
	return rows
}

// Differences returns the rows where at least one compared field differs
// after alias normalization. A code present on only one side is reported
// as missing rather than field-diffed; both-sides-absent cannot occur.
func Differences(joined []JoinedRow) []RowDiff {
	var diffs []RowDiff
	for _, row := range joined {
		if row.TCS == nil && row.TEMS == nil {
			continue
		}
		if row.TCS == nil {
			diffs = append(diffs, RowDiff{EquipmentCode: row.EquipmentCode, MissingIn: string(normalization.SourceTCS)})
			continue
		}
		if row.TEMS == nil {
			diffs = append(diffs, RowDiff{EquipmentCode: row.EquipmentCode, MissingIn: string(normalization.SourceTEMS)})
			continue
		}

		var fields []FieldDiff
		for _, field := range ComparedFields {
			a := row.TCS.Field(field)
			b := row.TEMS.Field(field)
			if fieldEqual(field, a, b) {
				continue
			}
			fields = append(fields, FieldDiff{Field: field, TCSValue: a, TEMSValue: b})
		}
		if len(fields) > 0 {
			diffs = append(diffs, RowDiff{EquipmentCode: row.EquipmentCode, Fields: fields})
		}
	}
	return diffs
}

// fieldEqual reports whether two raw values agree once alias-normalized.
// Two empty values are equal, never a difference.
func fieldEqual(field, a, b string) bool {
	ca := normalization.CanonicalValue(field, a)
	cb := normalization.CanonicalValue(field, b)
	if ca == "" && cb == "" {
		return true
	}
	return ca == cb
}

// ByField returns the subset of diffs touching the given field, for the
// per-field breakdown view.
func ByField(diffs []RowDiff, field string) []RowDiff {
	var out []RowDiff
	for _, d := range diffs {
		for _, f := range d.Fields {
			if f.Field == field {
				out = append(out, RowDiff{
					EquipmentCode: d.EquipmentCode,
					Fields:        []FieldDiff{f},
				})
				break
			}
		}
	}
	return out
}

// Compare runs the full reconciliation: decommissioned filtering, source
// summaries, outer join and difference detection.
func Compare(tcs, tems []database.InventoryRecord) Report {
	tcs = FilterDecommissioned(tcs)
	tems = FilterDecommissioned(tems)

	joined := OuterJoin(tcs, tems)
	return Report{
		TCS:         Summarize(normalization.SourceTCS, tcs),
		TEMS:        Summarize(normalization.SourceTEMS, tems),
		Joined:      joined,
		Differences: Differences(joined),
	}
}
