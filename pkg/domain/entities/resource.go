package entities

import "fmt"

// ResourceID represents a work center identifier
type ResourceID string

// Resource is one row of the work center utilization extract. Plant is empty
// when the extract does not carry it.
type Resource struct {
	ID          ResourceID
	Plant       string
	Utilization Value[float64]
}

// NewResource creates a validated Resource
func NewResource(id ResourceID, plant string, utilization Value[float64]) (*Resource, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("resource id cannot be empty")
	}
	return &Resource{ID: id, Plant: plant, Utilization: utilization}, nil
}
