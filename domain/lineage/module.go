package lineage

import "go.uber.org/fx"

// Module wires the traversal Service and its HTTP surface. The
// Registry and SearchClient implementations are provided by
// sibling packages (internal/registry, internal/searchindex).
var Module = fx.Module("lineage",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
