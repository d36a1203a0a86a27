// internal/database/sqlite.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const timeLayout = "2006-01-02 15:04:05"

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sqlite, nil
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL,
		args TEXT NOT NULL,
		source TEXT,
		start_time TEXT,
		received_at TEXT NOT NULL,
		consumed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_readings_code ON readings(code);
	CREATE INDEX IF NOT EXISTS idx_readings_consumed_at ON readings(consumed_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) CreateReading(reading *StoredReading) error {
	args, err := json.Marshal(reading.Args)
	if err != nil {
		return fmt.Errorf("failed to encode args: %w", err)
	}

	if reading.ReceivedAt.IsZero() {
		reading.ReceivedAt = time.Now().UTC()
	}

	var startTime sql.NullString
	if !reading.StartTime.IsZero() {
		startTime = sql.NullString{String: reading.StartTime.UTC().Format(timeLayout), Valid: true}
	}

	result, err := s.db.Exec(`
	INSERT INTO readings (code, args, source, start_time, received_at)
	VALUES (?, ?, ?, ?, ?)`,
		reading.Code, string(args), reading.Source, startTime,
		reading.ReceivedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reading.ID = int(id)
	return nil
}

// GetPendingReadings returns unconsumed readings in arrival order. A
// non-positive limit means all.
func (s *SQLiteDB) GetPendingReadings(limit int) ([]StoredReading, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
	SELECT id, code, args, source, start_time, received_at
	FROM readings
	WHERE consumed_at IS NULL
	ORDER BY id ASC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []StoredReading
	for rows.Next() {
		var r StoredReading
		var args, receivedAt string
		var source, startTime sql.NullString

		if err := rows.Scan(&r.ID, &r.Code, &args, &source, &startTime, &receivedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(args), &r.Args); err != nil {
			return nil, fmt.Errorf("reading %d: failed to decode args: %w", r.ID, err)
		}
		r.Source = source.String

		if startTime.Valid {
			if r.StartTime, err = time.Parse(timeLayout, startTime.String); err != nil {
				return nil, err
			}
		}
		if r.ReceivedAt, err = time.Parse(timeLayout, receivedAt); err != nil {
			return nil, err
		}

		readings = append(readings, r)
	}

	return readings, rows.Err()
}

// MarkConsumed stamps readings so later batches skip them.
func (s *SQLiteDB) MarkConsumed(ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE readings SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(timeLayout)
	for _, id := range ids {
		if _, err := stmt.Exec(now, id); err != nil {
			return fmt.Errorf("reading %d: %w", id, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{ByCode: make(map[string]int)}

	rows, err := s.db.Query(`
	SELECT code, COUNT(*), COUNT(*) - COUNT(consumed_at)
	FROM readings GROUP BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var count, pending int
		if err := rows.Scan(&code, &count, &pending); err != nil {
			return nil, err
		}
		stats.ByCode[code] = count
		stats.Total += count
		stats.Pending += pending
	}

	return stats, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
