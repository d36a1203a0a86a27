package models

import "time"

// Reading is one raw sensor package: an activity code plus positional args
type Reading struct {
	Code      string
	Args      []float64
	Source    string    // file name, "db" or "demo"
	StartTime time.Time // zero when the sensor did not report it
	InboxID   int       // readings inbox row, zero for other sources
}

// DemoReadings are the packages processed when no other source is configured.
func DemoReadings() []Reading {
	return []Reading{
		{Code: "SWM", Args: []float64{720, 1, 80, 25, 40}, Source: "demo"},
		{Code: "RUN", Args: []float64{15000, 1, 75}, Source: "demo"},
		{Code: "WLK", Args: []float64{9000, 1, 75, 180}, Source: "demo"},
	}
}
