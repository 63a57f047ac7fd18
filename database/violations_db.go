package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trafficdash/normalization"
)

// DBConfig holds connection pooling settings.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ViolationsDB wraps the local SQLite store. One table of violation
// records plus two staging tables for the inventory comparison tool.
type ViolationsDB struct {
	conn *sql.DB
}

const timeLayout = "2006-01-02 15:04:05"

// NewViolationsDB opens the store with default pooling settings.
func NewViolationsDB(dbPath string) (*ViolationsDB, error) {
	return NewViolationsDBWithConfig(dbPath, DBConfig{})
}

// NewViolationsDBWithConfig opens the store and creates the schema.
func NewViolationsDBWithConfig(dbPath string, config DBConfig) (*ViolationsDB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open violations database: %w", err)
	}

	// SQLite degrades with many concurrent connections, keep the pool small
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	db := &ViolationsDB{conn: conn}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *ViolationsDB) Close() error {
	return db.conn.Close()
}

func (db *ViolationsDB) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS violations (
			record_id TEXT PRIMARY KEY,
			violation_type TEXT,
			violation_timestamp DATETIME,
			speed_limit INTEGER,
			actual_speed INTEGER,
			actual_excess_speed INTEGER,
			notified_speed INTEGER,
			notified_excess_speed INTEGER,
			processing_status TEXT,
			lane INTEGER,
			vehicle_type TEXT,
			location_category TEXT,
			resident_category TEXT,
			vehicle_model TEXT,
			violation_location TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_violations_timestamp ON violations(violation_timestamp)`,
		`CREATE TABLE IF NOT EXISTS device_inventory (
			source TEXT NOT NULL,
			equipment_code TEXT NOT NULL,
			operating_status TEXT,
			control_type TEXT,
			install_location TEXT,
			police_station TEXT,
			speed_limit TEXT,
			enforcement_speed TEXT,
			install_date TEXT,
			vendor TEXT,
			PRIMARY KEY (source, equipment_code)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// InsertResult summarizes one batch insert.
type InsertResult struct {
	Total     int           `json:"total"`
	Inserted  int           `json:"inserted"`
	Duplicate int           `json:"duplicate"`
	Started   time.Time     `json:"started"`
	Completed time.Time     `json:"completed"`
	Duration  time.Duration `json:"duration"`
}

// InsertIgnore inserts all records whose record_id is not already present.
// Duplicates are silently skipped, never updated.
func (db *ViolationsDB) InsertIgnore(records []ViolationRecord) (*InsertResult, error) {
	result := &InsertResult{Total: len(records), Started: time.Now()}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO violations (
		record_id, violation_type, violation_timestamp, speed_limit,
		actual_speed, actual_excess_speed, notified_speed, notified_excess_speed,
		processing_status, lane, vehicle_type, location_category,
		resident_category, vehicle_model, violation_location
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		res, err := stmt.Exec(
			r.RecordID, r.ViolationType, r.ViolationTime.Format(timeLayout),
			r.SpeedLimit, r.ActualSpeed, r.ActualExcess, r.NotifiedSpeed,
			r.NotifiedExcess, r.ProcessingStatus, r.Lane, r.VehicleType,
			r.LocationCategory, r.ResidentCategory, r.VehicleModel,
			r.ViolationLocation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert record %s: %w", r.RecordID, err)
		}
		affected, _ := res.RowsAffected()
		if affected > 0 {
			result.Inserted++
		} else {
			result.Duplicate++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit insert: %w", err)
	}

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)
	return result, nil
}

const violationColumns = `record_id, violation_type, violation_timestamp, speed_limit,
	actual_speed, actual_excess_speed, notified_speed, notified_excess_speed,
	processing_status, lane, vehicle_type, location_category,
	resident_category, vehicle_model, violation_location`

// QueryAll returns every stored record ordered by timestamp.
func (db *ViolationsDB) QueryAll() ([]ViolationRecord, error) {
	rows, err := db.conn.Query(`SELECT ` + violationColumns + ` FROM violations ORDER BY violation_timestamp`)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()
	return scanViolations(rows)
}

// QueryRange returns records whose calendar date falls in [start, end]
// inclusive.
func (db *ViolationsDB) QueryRange(start, end time.Time) ([]ViolationRecord, error) {
	rows, err := db.conn.Query(
		`SELECT `+violationColumns+` FROM violations
		 WHERE date(violation_timestamp) >= date(?) AND date(violation_timestamp) <= date(?)
		 ORDER BY violation_timestamp`,
		normalization.FormatDate(start), normalization.FormatDate(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations range: %w", err)
	}
	defer rows.Close()
	return scanViolations(rows)
}

func scanViolations(rows *sql.Rows) ([]ViolationRecord, error) {
	var records []ViolationRecord
	for rows.Next() {
		var r ViolationRecord
		var ts string
		if err := rows.Scan(
			&r.RecordID, &r.ViolationType, &ts, &r.SpeedLimit,
			&r.ActualSpeed, &r.ActualExcess, &r.NotifiedSpeed, &r.NotifiedExcess,
			&r.ProcessingStatus, &r.Lane, &r.VehicleType, &r.LocationCategory,
			&r.ResidentCategory, &r.VehicleModel, &r.ViolationLocation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan violation row: %w", err)
		}
		parsed, err := normalization.ParseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp for record %s: %w", r.RecordID, err)
		}
		r.ViolationTime = parsed
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (db *ViolationsDB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM violations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}
	return n, nil
}

// DateBounds returns the earliest and latest violation dates in the store.
// ok is false when the store is empty.
func (db *ViolationsDB) DateBounds() (min, max time.Time, ok bool, err error) {
	var minStr, maxStr sql.NullString
	err = db.conn.QueryRow(
		`SELECT MIN(date(violation_timestamp)), MAX(date(violation_timestamp)) FROM violations`,
	).Scan(&minStr, &maxStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query date bounds: %w", err)
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	if min, err = normalization.ParseDate(minStr.String); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if max, err = normalization.ParseDate(maxStr.String); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return min, max, true, nil
}

// DeleteAll removes every record. Irreversible, no audit trail.
func (db *ViolationsDB) DeleteAll() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM violations`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete violations: %w", err)
	}
	return res.RowsAffected()
}

// DeleteRange removes records whose calendar date falls in [start, end]
// inclusive and leaves all others untouched.
func (db *ViolationsDB) DeleteRange(start, end time.Time) (int64, error) {
	res, err := db.conn.Exec(
		`DELETE FROM violations
		 WHERE date(violation_timestamp) >= date(?) AND date(violation_timestamp) <= date(?)`,
		normalization.FormatDate(start), normalization.FormatDate(end),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete violations range: %w", err)
	}
	return res.RowsAffected()
}

// DistinctValues returns the distinct values of one filterable column.
// The column name is checked against a whitelist, it never reaches SQL
// from user input directly.
func (db *ViolationsDB) DistinctValues(column string) ([]string, error) {
	allowed := map[string]bool{
		"violation_type":    true,
		"processing_status": true,
		"location_category": true,
		"vehicle_type":      true,
	}
	if !allowed[column] {
		return nil, fmt.Errorf("column %q is not filterable", column)
	}

	rows, err := db.conn.Query(fmt.Sprintf(
		`SELECT DISTINCT %s FROM violations WHERE %s IS NOT NULL AND %s != '' ORDER BY %s`,
		column, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// ReplaceInventory replaces the staged inventory for one source with the
// given records. The comparison tool always works on the latest upload.
func (db *ViolationsDB) ReplaceInventory(source normalization.InventorySource, records []InventoryRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM device_inventory WHERE source = ?`, string(source)); err != nil {
		return fmt.Errorf("failed to clear %s inventory: %w", source, err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO device_inventory (
		source, equipment_code, operating_status, control_type, install_location,
		police_station, speed_limit, enforcement_speed, install_date, vendor
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare inventory insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if strings.TrimSpace(r.EquipmentCode) == "" {
			continue
		}
		if _, err := stmt.Exec(
			string(source), r.EquipmentCode, r.OperatingStatus, r.ControlType,
			r.InstallLocation, r.PoliceStation, r.SpeedLimit, r.EnforcementSpeed,
			r.InstallDate, r.Vendor,
		); err != nil {
			return fmt.Errorf("failed to insert inventory record %s: %w", r.EquipmentCode, err)
		}
	}

	return tx.Commit()
}

// LoadInventory returns the staged inventory for one source.
func (db *ViolationsDB) LoadInventory(source normalization.InventorySource) ([]InventoryRecord, error) {
	rows, err := db.conn.Query(
		`SELECT equipment_code, operating_status, control_type, install_location,
		        police_station, speed_limit, enforcement_speed, install_date, vendor
		 FROM device_inventory WHERE source = ? ORDER BY equipment_code`,
		string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s inventory: %w", source, err)
	}
	defer rows.Close()

	var records []InventoryRecord
	for rows.Next() {
		var r InventoryRecord
		if err := rows.Scan(
			&r.EquipmentCode, &r.OperatingStatus, &r.ControlType, &r.InstallLocation,
			&r.PoliceStation, &r.SpeedLimit, &r.EnforcementSpeed, &r.InstallDate, &r.Vendor,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
