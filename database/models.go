package database

import (
	"time"

	"trafficdash/normalization"
)

// ViolationRecord is one detected violation. Records are immutable once
// ingested; the only mutations the store supports are deletes.
type ViolationRecord struct {
	RecordID          string    `json:"record_id"`
	ViolationType     string    `json:"violation_type"`
	ViolationTime     time.Time `json:"violation_timestamp"`
	SpeedLimit        int       `json:"speed_limit"`
	ActualSpeed       int       `json:"actual_speed"`
	ActualExcess      int       `json:"actual_excess_speed"`
	NotifiedSpeed     int       `json:"notified_speed"`
	NotifiedExcess    int       `json:"notified_excess_speed"`
	ProcessingStatus  string    `json:"processing_status"`
	Lane              int       `json:"lane"`
	VehicleType       string    `json:"vehicle_type"`
	LocationCategory  string    `json:"location_category"`
	ResidentCategory  string    `json:"resident_category"`
	VehicleModel      string    `json:"vehicle_model"`
	ViolationLocation string    `json:"violation_location"`
}

// EquipmentCode returns the 5-character device prefix of the record ID.
// Computed on read, never stored.
func (r ViolationRecord) EquipmentCode() string {
	if len(r.RecordID) < 5 {
		return r.RecordID
	}
	return r.RecordID[:5]
}

// Date returns the calendar date of the violation.
func (r ViolationRecord) Date() time.Time {
	return normalization.DateOnly(r.ViolationTime)
}

// InventoryRecord is one physical enforcement device row after rename-map
// normalization. Field values are raw; alias canonicalization happens at
// comparison time so the report can show the original spellings.
type InventoryRecord struct {
	EquipmentCode    string `json:"equipment_code"`
	OperatingStatus  string `json:"operating_status"`
	ControlType      string `json:"control_type"`
	InstallLocation  string `json:"install_location"`
	PoliceStation    string `json:"police_station"`
	SpeedLimit       string `json:"speed_limit"`
	EnforcementSpeed string `json:"enforcement_speed"`
	InstallDate      string `json:"install_date"`
	Vendor           string `json:"vendor"`
}

// Field returns a canonical-schema field by name. Used by the comparison
// engine to iterate compared fields without reflection.
func (r InventoryRecord) Field(name string) string {
	switch name {
	case normalization.FieldEquipmentCode:
		return r.EquipmentCode
	case normalization.FieldOperatingStatus:
		return r.OperatingStatus
	case normalization.FieldControlType:
		return r.ControlType
	case normalization.FieldInstallLocation:
		return r.InstallLocation
	case normalization.FieldPoliceStation:
		return r.PoliceStation
	case normalization.FieldSpeedLimit:
		return r.SpeedLimit
	case normalization.FieldEnforcementSpeed:
		return r.EnforcementSpeed
	case normalization.FieldInstallDate:
		return r.InstallDate
	case normalization.FieldVendor:
		return r.Vendor
	}
	return ""
}

// SetField assigns a canonical-schema field by name.
func (r *InventoryRecord) SetField(name, value string) {
	switch name {
	case normalization.FieldEquipmentCode:
		r.EquipmentCode = value
	case normalization.FieldOperatingStatus:
		r.OperatingStatus = value
	case normalization.FieldControlType:
		r.ControlType = value
	case normalization.FieldInstallLocation:
		r.InstallLocation = value
	case normalization.FieldPoliceStation:
		r.PoliceStation = value
	case normalization.FieldSpeedLimit:
		r.SpeedLimit = value
	case normalization.FieldEnforcementSpeed:
		r.EnforcementSpeed = value
	case normalization.FieldInstallDate:
		r.InstallDate = value
	case normalization.FieldVendor:
		r.Vendor = value
	}
}
