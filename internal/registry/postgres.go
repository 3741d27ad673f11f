package registry

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/emergent-company/lineage-engine/domain/lineage"
	"github.com/emergent-company/lineage-engine/pkg/apperror"
	"github.com/emergent-company/lineage-engine/pkg/logger"
)

// Postgres reads the structurally valid edge set from the
// edge_type_registry table. It is consulted by Cache on a refresh
// interval rather than on every hop.
type Postgres struct {
	db  bun.IDB
	log *slog.Logger
}

func NewPostgres(db bun.IDB, log *slog.Logger) *Postgres {
	return &Postgres{db: db, log: log.With(logger.Scope("registry.postgres"))}
}

// LoadAll reads the full edge type registry, grouped by entity type,
// for installation into a Static snapshot.
func (p *Postgres) LoadAll(ctx context.Context) (map[string][]lineage.EdgeInfo, error) {
	var rows []EdgeTypeRow
	if err := p.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	byType := make(map[string][]lineage.EdgeInfo, len(rows))
	for _, row := range rows {
		byType[row.EntityType] = append(byType[row.EntityType], lineage.EdgeInfo{
			RelationshipType:   row.RelationshipType,
			Direction:          lineage.Direction(row.Direction),
			OppositeEntityType: row.OppositeEntityType,
		})
	}
	return byType, nil
}
