package lineage

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/emergent-company/lineage-engine/internal/metrics"
	"github.com/emergent-company/lineage-engine/pkg/logger"
	"github.com/emergent-company/lineage-engine/pkg/tracing"
)

// batchExecutor partitions a hop's frontier into fixed-size batches
// and dispatches one search per batch concurrently, bounded by the
// remaining deadline and an optional rate limiter.
type batchExecutor struct {
	registry       Registry
	search         SearchClient
	builder        *QueryBuilder
	batchSize      int
	pageSize       int
	manualSentinel string
	limiter        *rate.Limiter
	metrics        *metrics.Registry
	log            *slog.Logger
}

func newBatchExecutor(registry Registry, search SearchClient, builder *QueryBuilder, batchSize, pageSize int, manualSentinel string, limiter *rate.Limiter, m *metrics.Registry, log *slog.Logger) *batchExecutor {
	return &batchExecutor{
		registry:       registry,
		search:         search,
		builder:        builder,
		batchSize:      batchSize,
		pageSize:       pageSize,
		manualSentinel: manualSentinel,
		limiter:        limiter,
		metrics:        m,
		log:            log.With(logger.Scope("lineage.batch")),
	}
}

// run expands one hop. It blocks until every batch has returned; each
// batch runs under ctx (derived from the traversal deadline), and a
// batch that returns after ctx is done has its results discarded.
func (e *batchExecutor) run(ctx context.Context, frontier []Urn, dir Direction, filters GraphFilters, visited *visitedSet, paths *pathTracker, degree int, tr TimeRange) ([]Relationship, error) {
	ctx, span := tracing.Start(ctx, "lineage.batch")
	defer span.End()

	byType := groupByType(frontier)
	validEdges, edgeSets, err := e.resolveRegistry(ctx, byType, dir)
	if err != nil {
		return nil, err
	}

	batches := partition(frontier, e.batchSize)

	g, gctx := errgroup.WithContext(ctx)
	results := make([][]Relationship, len(batches))

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if e.limiter != nil {
				if err := e.limiter.Wait(gctx); err != nil {
					return nil // deadline/cancel: drop this batch's contribution, not an error
				}
			}

			rel, err := e.runBatch(gctx, batch, byType, edgeSets, validEdges, filters, visited, paths, degree, tr)
			if gctx.Err() != nil {
				return nil // deadline reached mid-batch: discard this batch, graceful partial result
			}
			if err != nil {
				return err
			}
			results[i] = rel
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, ErrSearchBackend(err)
	}

	var all []Relationship
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (e *batchExecutor) runBatch(ctx context.Context, batch []Urn, byType map[string][]Urn, edgeSets map[string]edgeSet, validEdges map[validEdgeKey]struct{}, filters GraphFilters, visited *visitedSet, paths *pathTracker, degree int, tr TimeRange) ([]Relationship, error) {
	batchByType := groupByType(batch)

	var values []string
	for _, u := range batch {
		values = append(values, u.Value)
	}

	combined := edgeSet{}
	for t := range batchByType {
		es := edgeSets[t]
		combined.outgoingTypes = append(combined.outgoingTypes, es.outgoingTypes...)
		combined.incomingTypes = append(combined.incomingTypes, es.incomingTypes...)
	}

	query := e.builder.BuildFrontierQuery(values, combined, filters, tr)

	start := time.Now()
	hits, err := e.search.Search(ctx, query, 0, e.pageSize)
	if e.metrics != nil {
		e.metrics.QueryTimer.Observe(time.Since(start).Seconds())
		e.metrics.SearchReads.Inc()
	}
	if err != nil {
		return nil, err
	}

	extractor := newHitExtractor(toValues(batch), validEdges, visited, paths, e.manualSentinel)

	var out []Relationship
	for _, hit := range hits.Hits {
		out = append(out, extractor.extract(hit.Document, degree)...)
	}
	return out, nil
}

// resolveRegistry looks up valid edges for every distinct entity type
// present in the frontier and builds both the flattened valid-edge set
// the extractor needs and the per-type edge sets the query builder
// needs.
func (e *batchExecutor) resolveRegistry(ctx context.Context, byType map[string][]Urn, dir Direction) (map[validEdgeKey]struct{}, map[string]edgeSet, error) {
	validEdges := make(map[validEdgeKey]struct{})
	edgeSets := make(map[string]edgeSet)

	for entityType := range byType {
		edges, err := e.registry.GetLineageRelationships(ctx, entityType, dir)
		if err != nil {
			return nil, nil, ErrSearchBackend(err)
		}

		var es edgeSet
		for _, edge := range edges {
			key := validEdgeKey{
				entityType:         entityType,
				relationshipType:   edge.RelationshipType,
				direction:          edge.Direction,
				oppositeEntityType: edge.OppositeEntityType,
			}.normalized()
			validEdges[key] = struct{}{}

			if edge.Direction == Outgoing {
				es.outgoingTypes = append(es.outgoingTypes, edge.RelationshipType)
			} else {
				es.incomingTypes = append(es.incomingTypes, edge.RelationshipType)
			}
		}
		edgeSets[entityType] = es
	}

	return validEdges, edgeSets, nil
}

func groupByType(urns []Urn) map[string][]Urn {
	out := make(map[string][]Urn)
	for _, u := range urns {
		out[u.Type] = append(out[u.Type], u)
	}
	return out
}

func toValues(urns []Urn) []string {
	out := make([]string, len(urns))
	for i, u := range urns {
		out[i] = u.Value
	}
	return out
}

func partition(urns []Urn, size int) [][]Urn {
	if size <= 0 {
		size = len(urns)
	}
	var batches [][]Urn
	for i := 0; i < len(urns); i += size {
		end := i + size
		if end > len(urns) {
			end = len(urns)
		}
		batches = append(batches, urns[i:end])
	}
	return batches
}
