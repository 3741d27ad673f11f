package lineage

import "strings"

// validEdgeKey identifies one (sourceEntityType, relationshipType,
// direction, oppositeEntityType) tuple as registry-valid.
type validEdgeKey struct {
	entityType         string
	relationshipType   string
	direction          Direction
	oppositeEntityType string
}

func (k validEdgeKey) normalized() validEdgeKey {
	return validEdgeKey{
		entityType:         strings.ToLower(k.entityType),
		relationshipType:   k.relationshipType,
		direction:          k.direction,
		oppositeEntityType: strings.ToLower(k.oppositeEntityType),
	}
}

// hitExtractor decodes search hits into relationships, deduplicating
// against the shared visited set and rejecting edges that aren't
// present in the registry's valid-edge set even when the index
// returned them.
type hitExtractor struct {
	frontier       map[string]struct{}
	validEdges     map[validEdgeKey]struct{}
	visited        *visitedSet
	paths          *pathTracker
	manualSentinel string
}

func newHitExtractor(frontier []string, validEdges map[validEdgeKey]struct{}, visited *visitedSet, paths *pathTracker, manualSentinel string) *hitExtractor {
	f := make(map[string]struct{}, len(frontier))
	for _, u := range frontier {
		f[u] = struct{}{}
	}
	return &hitExtractor{frontier: f, validEdges: validEdges, visited: visited, paths: paths, manualSentinel: manualSentinel}
}

// extract processes one hit and returns zero, one, or two relationships
// (a single hit can yield both an outgoing and an incoming match when
// both endpoints are in the frontier and both edge triples validate).
func (x *hitExtractor) extract(doc EdgeDocument, degree int) []Relationship {
	var out []Relationship

	if _, ok := x.frontier[doc.SourceURN]; ok {
		key := validEdgeKey{
			entityType:         doc.SourceEntityType,
			relationshipType:   doc.RelationshipType,
			direction:          Outgoing,
			oppositeEntityType: doc.DestinationEntityType,
		}.normalized()
		if _, valid := x.validEdges[key]; valid && !x.visited.contains(doc.DestinationURN) {
			if x.visited.insert(doc.DestinationURN) {
				child := Urn{Value: doc.DestinationURN, Type: doc.DestinationEntityType}
				parent := Urn{Value: doc.SourceURN, Type: doc.SourceEntityType}
				paths := x.paths.extend(parent, child, Outgoing)
				out = append(out, Relationship{
					Type:         doc.RelationshipType,
					Entity:       child,
					Degree:       degree,
					Paths:        paths,
					CreatedOn:    doc.CreatedOn,
					CreatedActor: doc.CreatedActor,
					UpdatedOn:    doc.UpdatedOn,
					UpdatedActor: doc.UpdatedActor,
					IsManual:     doc.IsManual(x.manualSentinel),
				})
			}
		}
	}

	if _, ok := x.frontier[doc.DestinationURN]; ok {
		key := validEdgeKey{
			entityType:         doc.DestinationEntityType,
			relationshipType:   doc.RelationshipType,
			direction:          Incoming,
			oppositeEntityType: doc.SourceEntityType,
		}.normalized()
		if _, valid := x.validEdges[key]; valid && !x.visited.contains(doc.SourceURN) {
			if x.visited.insert(doc.SourceURN) {
				child := Urn{Value: doc.SourceURN, Type: doc.SourceEntityType}
				parent := Urn{Value: doc.DestinationURN, Type: doc.DestinationEntityType}
				paths := x.paths.extend(parent, child, Incoming)
				out = append(out, Relationship{
					Type:         doc.RelationshipType,
					Entity:       child,
					Degree:       degree,
					Paths:        paths,
					CreatedOn:    doc.CreatedOn,
					CreatedActor: doc.CreatedActor,
					UpdatedOn:    doc.UpdatedOn,
					UpdatedActor: doc.UpdatedActor,
					IsManual:     doc.IsManual(x.manualSentinel),
				})
			}
		}
	}

	return out
}
