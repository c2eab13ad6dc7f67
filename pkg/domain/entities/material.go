package entities

import "fmt"

// MaterialID represents a unique material identifier
type MaterialID string

// Material is one row of the stock coverage extract
type Material struct {
	ID           MaterialID
	CoverageDays Value[float64]
}

// NewMaterial creates a validated Material
func NewMaterial(id MaterialID, coverage Value[float64]) (*Material, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	return &Material{ID: id, CoverageDays: coverage}, nil
}
