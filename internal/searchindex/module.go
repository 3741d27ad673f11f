package searchindex

import (
	"log/slog"

	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/emergent-company/lineage-engine/domain/lineage"
	"github.com/emergent-company/lineage-engine/internal/config"
)

// Module provides the Postgres-backed SearchClient.
var Module = fx.Module("searchindex",
	fx.Provide(
		newClientFromConfig,
		fx.Annotate(
			func(c *Client) lineage.SearchClient { return c },
			fx.As(new(lineage.SearchClient)),
		),
	),
)

func newClientFromConfig(db bun.IDB, cfg *config.Config, log *slog.Logger) *Client {
	return NewClient(db, cfg.Lineage.ManualSource, log)
}
