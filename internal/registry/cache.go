package registry

import (
	"context"
	"log/slog"

	"github.com/emergent-company/lineage-engine/pkg/logger"
)

// Cache is a Static registry that is periodically repopulated from a
// Postgres source of truth by a scheduled task rather than read on
// every hop. It satisfies lineage.Registry directly.
type Cache struct {
	*Static
	source *Postgres
	log    *slog.Logger
}

// NewCache wraps source behind a Static snapshot, empty until the
// first Refresh.
func NewCache(source *Postgres, log *slog.Logger) *Cache {
	return &Cache{
		Static: NewStatic(),
		source: source,
		log:    log.With(logger.Scope("registry.cache")),
	}
}

// Refresh reloads the full edge type registry from Postgres and
// installs it atomically. Errors are returned for the caller to log;
// the previous snapshot remains in effect until a refresh succeeds.
func (c *Cache) Refresh(ctx context.Context) error {
	edges, err := c.source.LoadAll(ctx)
	if err != nil {
		return err
	}
	c.Snapshot(edges)
	c.log.Info("registry cache refreshed", slog.Int("entity_types", len(edges)))
	return nil
}
