package lineage

import "context"

// Registry answers which edges may leave an entity of a given type, in
// a given traversal direction. It is consulted once per (entityType,
// direction) pair at each hop.
type Registry interface {
	GetLineageRelationships(ctx context.Context, entityType string, direction Direction) ([]EdgeInfo, error)
}
