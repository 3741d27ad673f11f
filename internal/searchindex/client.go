// Package searchindex provides a Postgres/bun-backed reference
// implementation of the lineage engine's SearchClient, standing in for
// the search-engine-backed edge index assumed by the traversal core.
// No Elasticsearch/OpenSearch Go client appears anywhere in the
// dependency surface this module was built from, so the edge index is
// modeled as a plain relational table instead of a fabricated search
// dependency.
package searchindex

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/uptrace/bun"

	"github.com/emergent-company/lineage-engine/domain/lineage"
	"github.com/emergent-company/lineage-engine/pkg/logger"
)

// Client is a SearchClient backed by the lineage_edges table.
type Client struct {
	db             bun.IDB
	manualSentinel string
	log            *slog.Logger
}

func NewClient(db bun.IDB, manualSentinel string, log *slog.Logger) *Client {
	return &Client{
		db:             db,
		manualSentinel: manualSentinel,
		log:            log.With(logger.Scope("searchindex.client")),
	}
}

// Search runs a single bounded query and returns a page of hits
// ordered by (updated_on, id) so repeated calls against a stable
// snapshot are deterministic.
func (c *Client) Search(ctx context.Context, query lineage.BoolQuery, from, size int) (lineage.SearchHits, error) {
	if size <= 0 {
		size = 100
	}

	sq := c.db.NewSelect().Model((*EdgeRow)(nil))
	sq = applyQuery(sq, query, c.manualSentinel)

	total, err := sq.Count(ctx)
	if err != nil {
		return lineage.SearchHits{}, lineage.ErrSearchBackend(err)
	}

	var rows []EdgeRow
	err = sq.Order("updated_on DESC NULLS LAST", "id ASC").
		Offset(from).
		Limit(size).
		Scan(ctx, &rows)
	if err != nil {
		return lineage.SearchHits{}, lineage.ErrSearchBackend(err)
	}

	return lineage.SearchHits{Total: total, Hits: toHits(rows)}, nil
}

// SearchAfter implements keyset pagination for out-of-band scan/export
// tooling. Postgres has no point-in-time search context, so
// pointInTimeID is treated as an opaque cursor (the last row's sort
// value) and keepAlive is accepted but unused.
func (c *Client) SearchAfter(ctx context.Context, query lineage.BoolQuery, sort lineage.SortKey, pointInTimeID string, keepAlive string, size int) (lineage.SearchHits, error) {
	if size <= 0 {
		size = 100
	}

	sq := c.db.NewSelect().Model((*EdgeRow)(nil))
	sq = applyQuery(sq, query, c.manualSentinel)

	col := fieldColumn(sort.Field)
	direction := "ASC"
	cmp := ">"
	if !sort.Ascending {
		direction = "DESC"
		cmp = "<"
	}

	if pointInTimeID != "" {
		sq = sq.Where(fmt.Sprintf("%s %s ?", col, cmp), pointInTimeID)
	}

	var rows []EdgeRow
	err := sq.OrderExpr(fmt.Sprintf("%s %s", col, direction)).
		Limit(size).
		Scan(ctx, &rows)
	if err != nil {
		return lineage.SearchHits{}, lineage.ErrSearchBackend(err)
	}

	return lineage.SearchHits{Hits: toHits(rows)}, nil
}

func applyQuery(sq *bun.SelectQuery, query lineage.BoolQuery, manualSentinel string) *bun.SelectQuery {
	pred, args := renderBoolQuery(query, manualSentinel)
	if pred == "" {
		return sq
	}
	return sq.Where(pred, args...)
}

func toHits(rows []EdgeRow) []lineage.Hit {
	hits := make([]lineage.Hit, len(rows))
	for i, row := range rows {
		hits[i] = lineage.Hit{
			Document:   toDocument(row),
			SortValues: []any{strconv.FormatInt(row.ID, 10)},
		}
	}
	return hits
}
