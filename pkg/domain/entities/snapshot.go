package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSnapshotKind is returned for kind names that match no extract
var ErrUnknownSnapshotKind = errors.New("unknown snapshot kind")

// SnapshotKind identifies one of the uploaded planning extracts
type SnapshotKind string

const (
	KindMaterials SnapshotKind = "materials"
	KindOrders    SnapshotKind = "orders"
	KindResources SnapshotKind = "resources"
)

// SnapshotKinds lists every kind in load order
var SnapshotKinds = []SnapshotKind{KindMaterials, KindOrders, KindResources}

var kindAliases = map[string]SnapshotKind{
	"materials":       KindMaterials,
	"md04":            KindMaterials,
	"orders":          KindOrders,
	"cohv":            KindOrders,
	"resources":       KindResources,
	"workcenters":     KindResources,
	"work-centers":    KindResources,
	"centros":         KindResources,
	"centro_trabalho": KindResources,
}

// ParseSnapshotKind accepts the canonical kind names and the transaction
// names planners usually call the extracts by
func ParseSnapshotKind(s string) (SnapshotKind, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSnapshotKind, s)
	}
	return kind, nil
}
