// Package parser turns reading files into sensor packages.
package parser

import (
	"fmt"
	"os"

	"github.com/sstent/trainingtracker/internal/models"
)

// Parser decodes one file's worth of readings.
type Parser interface {
	ParseData(data []byte) ([]models.Reading, error)
}

// Profile is the athlete data that activity files do not carry.
type Profile struct {
	WeightKG float64
	HeightCM float64
}

// ParseFile picks a parser for filename and decodes it.
func ParseFile(filename string, profile Profile) ([]models.Reading, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	p, err := NewParser(filename, data, profile)
	if err != nil {
		return nil, err
	}

	readings, err := p.ParseData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	for i := range readings {
		readings[i].Source = filename
	}
	return readings, nil
}
