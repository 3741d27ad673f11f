package registry

import (
	"go.uber.org/fx"

	"github.com/emergent-company/lineage-engine/domain/lineage"
)

// Module provides the Postgres-backed, cron-refreshed Registry
// implementation. Initial population does not happen at construction
// time; the scheduler module's OnStart hook runs a synchronous Refresh,
// so app start waits on that database round trip.
var Module = fx.Module("registry",
	fx.Provide(
		NewPostgres,
		NewCache,
		fx.Annotate(
			func(c *Cache) lineage.Registry { return c },
			fx.As(new(lineage.Registry)),
		),
	),
)
