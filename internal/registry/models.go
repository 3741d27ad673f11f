package registry

import "github.com/uptrace/bun"

// EdgeTypeRow is one row of the edge_type_registry table: a single
// structurally valid (entityType, direction) -> relationship edge.
type EdgeTypeRow struct {
	bun.BaseModel `bun:"table:edge_type_registry,alias:etr"`

	EntityType         string `bun:"entity_type,notnull"`
	Direction          string `bun:"direction,notnull"`
	RelationshipType   string `bun:"relationship_type,notnull"`
	OppositeEntityType string `bun:"opposite_entity_type,notnull"`
}
