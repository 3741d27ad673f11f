package searchindex

import "github.com/uptrace/bun"

// EdgeRow is the Postgres-backed reference shape of a single edge
// document, mirroring lineage.EdgeDocument for storage.
type EdgeRow struct {
	bun.BaseModel `bun:"table:lineage_edges,alias:e"`

	ID                    int64             `bun:"id,pk,autoincrement"`
	SourceURN             string            `bun:"source_urn,notnull"`
	SourceEntityType      string            `bun:"source_entity_type,notnull"`
	DestinationURN        string            `bun:"destination_urn,notnull"`
	DestinationEntityType string            `bun:"destination_entity_type,notnull"`
	RelationshipType      string            `bun:"relationship_type,notnull"`
	CreatedOn             *int64            `bun:"created_on"`
	CreatedActor          string            `bun:"created_actor"`
	UpdatedOn             *int64            `bun:"updated_on"`
	UpdatedActor          string            `bun:"updated_actor"`
	Properties            map[string]string `bun:"properties,type:jsonb"`
}
