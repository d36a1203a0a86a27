// internal/database/models.go
package database

import "time"

// StoredReading is a raw sensor package waiting in the readings inbox.
type StoredReading struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	Args       []float64 `json:"args"`
	Source     string    `json:"source"`
	StartTime  time.Time `json:"start_time"`
	ReceivedAt time.Time `json:"received_at"`
}

type Stats struct {
	Total   int            `json:"total"`
	Pending int            `json:"pending"`
	ByCode  map[string]int `json:"by_code"`
}

// Database interface
type Database interface {
	CreateReading(reading *StoredReading) error
	GetPendingReadings(limit int) ([]StoredReading, error)
	MarkConsumed(ids []int) error
	GetStats() (*Stats, error)
	Close() error
}
