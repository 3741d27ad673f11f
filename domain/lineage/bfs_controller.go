package lineage

import (
	"context"
	"log/slog"
	"time"

	"github.com/emergent-company/lineage-engine/pkg/logger"
	"github.com/emergent-company/lineage-engine/pkg/tracing"
)

// bfsController runs the level-order expansion for a single traversal.
type bfsController struct {
	executor *batchExecutor
	log      *slog.Logger
}

func newBFSController(executor *batchExecutor, log *slog.Logger) *bfsController {
	return &bfsController{executor: executor, log: log.With(logger.Scope("lineage.bfs"))}
}

// run executes the BFS to completion or until the deadline elapses,
// then applies offset/count slicing. The returned total is the
// pre-slice count.
func (c *bfsController) run(ctx context.Context, q Query, deadline time.Time) (Result, error) {
	ctx, span := tracing.Start(ctx, "lineage.bfs")
	defer span.End()

	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	visited := newVisitedSet(q.Root.Value)
	paths := newPathTracker()

	frontier := []Urn{q.Root}
	var results []Relationship
	truncated := false

	for hop := 1; hop <= q.MaxHops; hop++ {
		if len(frontier) == 0 {
			break
		}
		if time.Now().After(deadline) {
			c.log.Info("lineage traversal deadline reached", slog.Int("hop", hop), slog.Int("results_so_far", len(results)))
			truncated = true
			break
		}

		hopResults, err := c.executor.run(ctx, frontier, q.Direction, q.Filters, visited, paths, hop, q.TimeRange)
		if err != nil {
			return Result{}, err
		}

		if ctx.Err() != nil {
			truncated = true
			results = append(results, hopResults...)
			break
		}

		results = append(results, hopResults...)

		frontier = make([]Urn, len(hopResults))
		for i, r := range hopResults {
			frontier[i] = r.Entity
		}
	}

	total := len(results)
	sliced := sliceResults(results, q.Offset, q.Count)

	return Result{Total: total, Relationships: sliced, Truncated: truncated}, nil
}

func sliceResults(results []Relationship, offset, count int) []Relationship {
	if offset >= len(results) {
		return nil
	}
	end := offset + count
	if count <= 0 || end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
