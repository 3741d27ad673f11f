// Package registry provides Registry implementations for the lineage
// engine: an in-memory Static registry for tests and seed scenarios,
// and a Postgres-backed reader with a cron-refreshed in-memory cache.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/emergent-company/lineage-engine/domain/lineage"
)

// Static is a fixed, in-memory Registry. Safe for concurrent use.
type Static struct {
	mu    sync.RWMutex
	edges map[key][]lineage.EdgeInfo
}

type key struct {
	entityType string
	direction  lineage.Direction
}

// NewStatic returns an empty Static registry, keyed by (entityType,
// direction); entries are added with Add.
func NewStatic() *Static {
	return &Static{edges: make(map[key][]lineage.EdgeInfo)}
}

// Add registers an edge that may leave entityType in the given
// direction.
func (s *Static) Add(entityType string, edge lineage.EdgeInfo) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{entityType: normalizeType(entityType), direction: edge.Direction}
	s.edges[k] = append(s.edges[k], edge)
	return s
}

func (s *Static) GetLineageRelationships(_ context.Context, entityType string, direction lineage.Direction) ([]lineage.EdgeInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edges[key{entityType: normalizeType(entityType), direction: direction}], nil
}

// Snapshot replaces the entire edge set atomically, used by Cache to
// install a freshly loaded Postgres read.
func (s *Static) Snapshot(edges map[string][]lineage.EdgeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = make(map[key][]lineage.EdgeInfo)
	for entityType, list := range edges {
		for _, e := range list {
			k := key{entityType: normalizeType(entityType), direction: e.Direction}
			s.edges[k] = append(s.edges[k], e)
		}
	}
}

// normalizeType matches the case-insensitive entity-type comparison
// used by the hit extractor's validEdgeKey.
func normalizeType(entityType string) string {
	return strings.ToLower(entityType)
}
