package lineage

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/emergent-company/lineage-engine/internal/config"
	"github.com/emergent-company/lineage-engine/internal/metrics"
	"github.com/emergent-company/lineage-engine/pkg/logger"
	"github.com/emergent-company/lineage-engine/pkg/mathutil"
)

// Service is the public entry point to the lineage traversal engine.
type Service struct {
	controller *bfsController
	search     SearchClient
	builder    *QueryBuilder
	maxHops    int
	deadline   time.Duration
	log        *slog.Logger
}

// NewService wires the Query Builder, Batch Executor, and BFS
// Controller behind a single facade.
func NewService(registry Registry, search SearchClient, cfg *config.Config, m *metrics.Registry, log *slog.Logger) *Service {
	log = log.With(logger.Scope("lineage"))
	builder := NewQueryBuilder(cfg.Lineage.ManualSource)

	var limiter *rate.Limiter
	if cfg.Lineage.SearchConcurrency > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Lineage.SearchConcurrency), cfg.Lineage.SearchConcurrency)
	}

	executor := newBatchExecutor(registry, search, builder, cfg.Lineage.BatchSize, cfg.Lineage.MaxElasticResult, cfg.Lineage.ManualSource, limiter, m, log)
	controller := newBFSController(executor, log)

	return &Service{
		controller: controller,
		search:     search,
		builder:    builder,
		maxHops:    cfg.Lineage.MaxHops,
		deadline:   cfg.Lineage.Deadline(),
		log:        log,
	}
}

// GetLineage runs a bounded breadth-first traversal from q.Root.
func (s *Service) GetLineage(ctx context.Context, q Query) (Result, error) {
	q.MaxHops = mathutil.ClampLimit(q.MaxHops, s.maxHops, s.maxHops)
	// A non-positive Count means "no limit, return to the end of the
	// traversal" (see sliceResults) rather than a default page size, so
	// it is only clamped against the upper bound, never floored.
	if q.Count > 0 {
		q.Count = mathutil.ClampInt(q.Count, 1, q.MaxHops*1000)
	}
	q.Offset = mathutil.ClampInt(q.Offset, 0, math.MaxInt)

	start := q.RequestedAt
	if start.IsZero() {
		start = time.Now()
	}

	return s.controller.run(ctx, q, start.Add(s.deadline))
}

// SearchEdges runs a standalone structured edge search, independent of
// BFS traversal.
func (s *Service) SearchEdges(ctx context.Context, sourceType string, sourceFilter Filter, destType string, destFilter Filter, relationshipTypes []string, from, size int) (SearchHits, error) {
	size = mathutil.ClampLimit(size, 100, 1000)
	query, err := s.builder.BuildStaticEdgeQuery(sourceType, sourceFilter, destType, destFilter, relationshipTypes)
	if err != nil {
		return SearchHits{}, err
	}
	hits, err := s.search.Search(ctx, query, from, size)
	if err != nil {
		return SearchHits{}, ErrSearchBackend(err)
	}
	return hits, nil
}

// EdgeScan streams every edge document in the index a page at a time
// using search-after pagination. It is never used by GetLineage; it
// exists for operational tooling (reindex counts, registry-drift
// audits) that needs to walk the whole index.
type EdgeScan struct {
	client        SearchClient
	query         BoolQuery
	sort          SortKey
	pointInTimeID string
	keepAlive     string
	pageSize      int
	done          bool
}

// ScanEdges begins a full-index scan.
func (s *Service) ScanEdges(query BoolQuery, sort SortKey, pointInTimeID, keepAlive string, pageSize int) *EdgeScan {
	return &EdgeScan{client: s.search, query: query, sort: sort, pointInTimeID: pointInTimeID, keepAlive: keepAlive, pageSize: pageSize}
}

// Next returns the next page of edges. done is true on the page that
// comes back shorter than pageSize; later calls return an empty page
// with done=true.
func (sc *EdgeScan) Next(ctx context.Context) (hits SearchHits, done bool, err error) {
	if sc.done {
		return SearchHits{}, true, nil
	}

	hits, err = sc.client.SearchAfter(ctx, sc.query, sc.sort, sc.pointInTimeID, sc.keepAlive, sc.pageSize)
	if err != nil {
		return SearchHits{}, false, ErrSearchBackend(err)
	}
	if len(hits.Hits) < sc.pageSize {
		sc.done = true
	}
	if n := len(hits.Hits); n > 0 {
		if last := hits.Hits[n-1].SortValues; len(last) > 0 {
			if cursor, ok := last[0].(string); ok {
				sc.pointInTimeID = cursor
			}
		}
	}
	return hits, sc.done, nil
}
