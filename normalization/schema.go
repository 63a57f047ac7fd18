package normalization

import (
	"fmt"
	"strings"
)

// InventorySource identifies which device-inventory export a table came from.
type InventorySource string

const (
	SourceTCS  InventorySource = "tcs"
	SourceTEMS InventorySource = "tems"
)

// SchemaError reports canonical columns that could not be mapped from the
// input header row. The whole file is rejected, nothing is ingested.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed for %s: missing required columns: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

// ViolationColumns are the required headers of a violation export, in the
// order they appear in the source spreadsheet.
var ViolationColumns = []string{
	"일련번호",     // record id
	"위반유형",     // violation type
	"위반일시",     // violation timestamp
	"제한속도",     // speed limit
	"실제주행속도", // actual speed
	"실제초과속도", // actual excess speed
	"고지주행속도", // notified speed
	"고지초과속도", // notified excess speed
	"처리상태",     // processing status
	"위반차로",     // lane
	"차종",         // vehicle type
	"장소구분",     // location category
	"주민구분",     // resident category
	"차명",         // vehicle model
	"위반장소",     // violation location
}

// Canonical inventory field names shared by both sources after renaming.
const (
	FieldEquipmentCode    = "equipment_code"
	FieldOperatingStatus  = "operating_status"
	FieldControlType      = "control_type"
	FieldInstallLocation  = "install_location"
	FieldPoliceStation    = "police_station"
	FieldSpeedLimit       = "speed_limit"
	FieldEnforcementSpeed = "enforcement_speed"
	FieldInstallDate      = "install_date"
	FieldVendor           = "vendor"
)

// InventoryFields lists the canonical inventory columns in report order.
var InventoryFields = []string{
	FieldEquipmentCode,
	FieldOperatingStatus,
	FieldControlType,
	FieldInstallLocation,
	FieldPoliceStation,
	FieldSpeedLimit,
	FieldEnforcementSpeed,
	FieldInstallDate,
	FieldVendor,
}

// tcsRenameMap maps TCS export headers onto the canonical schema.
var tcsRenameMap = map[string]string{
	"장비코드":   FieldEquipmentCode,
	"운영상태":   FieldOperatingStatus,
	"단속유형":   FieldControlType,
	"설치장소":   FieldInstallLocation,
	"관할경찰서": FieldPoliceStation,
	"제한속도":   FieldSpeedLimit,
	"단속속도":   FieldEnforcementSpeed,
	"설치일자":   FieldInstallDate,
	"설치업체":   FieldVendor,
}

// temsRenameMap maps TEMS export headers onto the canonical schema.
// TEMS uses its own naming for every field, including a unit suffix on the
// speed limit column.
var temsRenameMap = map[string]string{
	"장비번호":         FieldEquipmentCode,
	"상태":             FieldOperatingStatus,
	"단속구분":         FieldControlType,
	"설치위치":         FieldInstallLocation,
	"관할서":           FieldPoliceStation,
	"제한속도(km/h)":   FieldSpeedLimit,
	"단속기준속도":     FieldEnforcementSpeed,
	"설치일":           FieldInstallDate,
	"업체명":           FieldVendor,
}

// RenameMap returns the header rename map for the given inventory source.
func RenameMap(source InventorySource) (map[string]string, error) {
	switch source {
	case SourceTCS:
		return tcsRenameMap, nil
	case SourceTEMS:
		return temsRenameMap, nil
	default:
		return nil, fmt.Errorf("unknown inventory source: %q", source)
	}
}

// NormalizeHeader prepares a raw header cell for rename-map lookup.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, " ", "")
	return h
}
