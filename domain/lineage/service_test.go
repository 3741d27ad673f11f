package lineage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/lineage-engine/internal/config"
	"github.com/emergent-company/lineage-engine/internal/metrics"
)

func testMetrics() *metrics.Registry {
	return metrics.New(prometheus.NewRegistry())
}

// fakeRegistry answers GetLineageRelationships from a fixed table,
// keyed by (entityType, direction), so each scenario can wire exactly
// the edges it needs without a database.
type fakeRegistry struct {
	edges map[string][]EdgeInfo
}

func newFakeRegistry() *fakeRegistry { return &fakeRegistry{edges: map[string][]EdgeInfo{}} }

func (r *fakeRegistry) add(entityType string, direction Direction, relationshipType, oppositeType string) {
	key := entityType + "|" + string(direction)
	r.edges[key] = append(r.edges[key], EdgeInfo{RelationshipType: relationshipType, Direction: direction, OppositeEntityType: oppositeType})
}

func (r *fakeRegistry) GetLineageRelationships(_ context.Context, entityType string, direction Direction) ([]EdgeInfo, error) {
	return r.edges[entityType+"|"+string(direction)], nil
}

// fakeSearchClient serves Search from a fixed document set, ignoring
// the compiled query entirely: every call returns all documents (cut to
// size), and the hit extractor decides which of them apply to the hop.
type fakeSearchClient struct {
	docs    []EdgeDocument
	failErr error
}

func (c *fakeSearchClient) Search(_ context.Context, _ BoolQuery, _, size int) (SearchHits, error) {
	if c.failErr != nil {
		return SearchHits{}, c.failErr
	}
	hits := make([]Hit, 0, len(c.docs))
	for _, d := range c.docs {
		hits = append(hits, Hit{Document: d})
	}
	if size > 0 && len(hits) > size {
		hits = hits[:size]
	}
	return SearchHits{Total: len(hits), Hits: hits}, nil
}

func (c *fakeSearchClient) SearchAfter(_ context.Context, _ BoolQuery, _ SortKey, _, _ string, _ int) (SearchHits, error) {
	return SearchHits{}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Lineage.BatchSize = 1000
	cfg.Lineage.MaxElasticResult = 10000
	cfg.Lineage.DeadlineSeconds = 5
	cfg.Lineage.MaxHops = 20
	cfg.Lineage.ManualSource = "UI"
	return cfg
}

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}

// S1: single-hop upstream traversal (the root is the edge's destination)
// returns the one directly connected entity.
func TestService_GetLineage_SingleHopUpstream(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("Dataset", Incoming, "DownstreamOf", "Dataset")

	search := &fakeSearchClient{docs: []EdgeDocument{
		{SourceURN: "urn:upstream", SourceEntityType: "Dataset", DestinationURN: "urn:root", DestinationEntityType: "Dataset", RelationshipType: "DownstreamOf"},
	}}

	svc := NewService(reg, search, testConfig(), testMetrics(), testLog())

	res, err := svc.GetLineage(context.Background(), Query{
		Root:      Urn{Value: "urn:root", Type: "Dataset"},
		Direction: Incoming,
		MaxHops:   1,
		Count:     100,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	require.Len(t, res.Relationships, 1)
	require.Equal(t, "urn:upstream", res.Relationships[0].Entity.Value)
}

// S2: a cycle back to the root must not be re-visited or re-emitted.
func TestService_GetLineage_CycleDoesNotRevisitRoot(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("Dataset", Outgoing, "DownstreamOf", "DataJob")
	reg.add("DataJob", Outgoing, "Produces", "Dataset")

	search := &fakeSearchClient{docs: []EdgeDocument{
		{SourceURN: "urn:root", SourceEntityType: "Dataset", DestinationURN: "urn:job", DestinationEntityType: "DataJob", RelationshipType: "DownstreamOf"},
		{SourceURN: "urn:job", SourceEntityType: "DataJob", DestinationURN: "urn:root", DestinationEntityType: "Dataset", RelationshipType: "Produces"},
	}}

	svc := NewService(reg, search, testConfig(), testMetrics(), testLog())

	res, err := svc.GetLineage(context.Background(), Query{
		Root:      Urn{Value: "urn:root", Type: "Dataset"},
		Direction: Outgoing,
		MaxHops:   5,
		Count:     100,
	})
	require.NoError(t, err)
	for _, r := range res.Relationships {
		require.NotEqual(t, "urn:root", r.Entity.Value, "root should never be re-emitted as a relationship")
	}
}

// S4: an edge carrying the manual-source sentinel, returned under a time
// filter that excludes its timestamp, is emitted and flagged IsManual.
// The fake search client does not evaluate the query, so the time-range
// exemption itself is covered by the query builder tests.
func TestService_GetLineage_ManualEdgeBypassesTimeFilter(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("Dataset", Outgoing, "DownstreamOf", "DataJob")

	old := int64(1)
	search := &fakeSearchClient{docs: []EdgeDocument{
		{
			SourceURN: "urn:root", SourceEntityType: "Dataset",
			DestinationURN: "urn:job", DestinationEntityType: "DataJob",
			RelationshipType: "DownstreamOf",
			CreatedOn:        &old,
			Properties:       map[string]string{"source": "UI"},
		},
	}}

	svc := NewService(reg, search, testConfig(), testMetrics(), testLog())

	future := time.Now().Add(24 * time.Hour).UnixMilli()
	res, err := svc.GetLineage(context.Background(), Query{
		Root:      Urn{Value: "urn:root", Type: "Dataset"},
		Direction: Outgoing,
		MaxHops:   1,
		Count:     100,
		TimeRange: TimeRange{StartMs: &future},
	})
	require.NoError(t, err)
	require.Len(t, res.Relationships, 1)
	require.True(t, res.Relationships[0].IsManual)
}

// S5: an edge the index returns but that the registry never declared
// valid must be silently dropped, not surfaced as a relationship.
func TestService_GetLineage_InvalidEdgeRejected(t *testing.T) {
	reg := newFakeRegistry() // no edges registered at all

	search := &fakeSearchClient{docs: []EdgeDocument{
		{SourceURN: "urn:root", SourceEntityType: "Dataset", DestinationURN: "urn:job", DestinationEntityType: "DataJob", RelationshipType: "DownstreamOf"},
	}}

	svc := NewService(reg, search, testConfig(), testMetrics(), testLog())

	res, err := svc.GetLineage(context.Background(), Query{
		Root:      Urn{Value: "urn:root", Type: "Dataset"},
		Direction: Outgoing,
		MaxHops:   1,
		Count:     100,
	})
	require.NoError(t, err)
	require.Empty(t, res.Relationships)
}

// S6: a deadline that elapses before the traversal finishes yields a
// truncated, partial result instead of an error.
func TestService_GetLineage_DeadlineYieldsPartialResult(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("Dataset", Outgoing, "DownstreamOf", "DataJob")

	search := &fakeSearchClient{docs: []EdgeDocument{
		{SourceURN: "urn:root", SourceEntityType: "Dataset", DestinationURN: "urn:job", DestinationEntityType: "DataJob", RelationshipType: "DownstreamOf"},
	}}

	cfg := testConfig()
	svc := NewService(reg, search, cfg, testMetrics(), testLog())

	past := time.Now().Add(-time.Hour)
	res, err := svc.GetLineage(context.Background(), Query{
		Root:        Urn{Value: "urn:root", Type: "Dataset"},
		Direction:   Outgoing,
		MaxHops:     5,
		Count:       100,
		RequestedAt: past.Add(-cfg.Lineage.Deadline()),
	})
	require.NoError(t, err)
	require.True(t, res.Truncated, "expected the result to be marked truncated once the deadline has already elapsed")
}

// Search backend failures are hard errors, not partial results.
func TestService_GetLineage_SearchBackendErrorPropagates(t *testing.T) {
	reg := newFakeRegistry()
	reg.add("Dataset", Outgoing, "DownstreamOf", "DataJob")

	search := &fakeSearchClient{failErr: errSearchUnavailable{}}

	svc := NewService(reg, search, testConfig(), testMetrics(), testLog())

	_, err := svc.GetLineage(context.Background(), Query{
		Root:      Urn{Value: "urn:root", Type: "Dataset"},
		Direction: Outgoing,
		MaxHops:   1,
		Count:     100,
	})
	require.Error(t, err)
}

type errSearchUnavailable struct{}

func (errSearchUnavailable) Error() string { return "search backend unavailable" }
