package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sstent/trainingtracker/internal/models"
)

type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

type jsonPackage struct {
	Code string    `json:"code"`
	Args []float64 `json:"args"`
}

// ParseData accepts either a list of packages or a single package object.
func (p *JSONParser) ParseData(data []byte) ([]models.Reading, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single jsonPackage
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to decode package: %w", err)
		}
		return []models.Reading{toReading(single)}, nil
	}

	var packages []jsonPackage
	if err := json.Unmarshal(trimmed, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}

	readings := make([]models.Reading, 0, len(packages))
	for _, pkg := range packages {
		readings = append(readings, toReading(pkg))
	}
	return readings, nil
}

func toReading(pkg jsonPackage) models.Reading {
	return models.Reading{Code: pkg.Code, Args: pkg.Args}
}
