package lineage

import "strings"

// QueryBuilder composes BoolQuery predicates for frontier expansion and
// for standalone structured edge search.
type QueryBuilder struct {
	manualSentinel string
}

func NewQueryBuilder(manualSentinel string) *QueryBuilder {
	return &QueryBuilder{manualSentinel: manualSentinel}
}

// edgeSet groups edges discovered from the registry by relationship
// type, separately for the outgoing and incoming directions relative
// to the entities in urns.
type edgeSet struct {
	outgoingTypes []string
	incomingTypes []string
}

// BuildFrontierQuery composes the disjunction of an outgoing branch
// (source.urn in urns) and an incoming branch (destination.urn in
// urns), each restricted to the edge types the registry allows and to
// the entity-type filter, with the time-range exemptions for absent
// timestamps and manual edges folded in as OR branches.
func (b *QueryBuilder) BuildFrontierQuery(urns []string, edges edgeSet, filters GraphFilters, tr TimeRange) BoolQuery {
	var should []Clause

	if len(edges.outgoingTypes) > 0 {
		must := []Clause{
			TermsClause{Field: "source.urn", Values: urns},
			TermsClause{Field: "relationshipType", Values: edges.outgoingTypes},
		}
		must = append(must, entityTypeClauses(filters)...)
		must = append(must, timeRangeClauses(tr, b.manualSentinel)...)
		should = append(should, BoolQuery{Must: must})
	}

	if len(edges.incomingTypes) > 0 {
		must := []Clause{
			TermsClause{Field: "destination.urn", Values: urns},
			TermsClause{Field: "relationshipType", Values: edges.incomingTypes},
		}
		must = append(must, entityTypeClauses(filters)...)
		must = append(must, timeRangeClauses(tr, b.manualSentinel)...)
		should = append(should, BoolQuery{Must: must})
	}

	return BoolQuery{Should: should}
}

func entityTypeClauses(filters GraphFilters) []Clause {
	if len(filters.AllowedEntityTypes) == 0 {
		return nil
	}
	return []Clause{
		TermsClause{Field: "source.entityType", Values: filters.AllowedEntityTypes},
		TermsClause{Field: "destination.entityType", Values: filters.AllowedEntityTypes},
	}
}

// timeRangeClauses renders the start/end time filters, each with the
// absent-timestamp and manual-edge exemptions folded in as additional
// Should branches within a wrapping BoolQuery so they act as an OR
// against the base comparison rather than narrowing it further.
//
// The absent-timestamp exemption only applies when BOTH createdOn and
// updatedOn are absent, not when either one individually is — an edge
// carrying a createdOn but no updatedOn must still be compared against
// the range, since updatedOn is optional in the data model and its
// absence alone says nothing about the edge's age.
func timeRangeClauses(tr TimeRange, manualSentinel string) []Clause {
	if tr.empty() {
		return nil
	}

	var clauses []Clause
	if tr.StartMs != nil {
		clauses = append(clauses, BoolQuery{Should: []Clause{
			RangeClause{Field: "updatedOn", Gte: tr.StartMs},
			RangeClause{Field: "createdOn", Gte: tr.StartMs},
			bothTimestampsAbsentClause(),
			TermsClause{Field: "properties.source", Values: []string{manualSentinel}},
		}})
	}
	if tr.EndMs != nil {
		clauses = append(clauses, BoolQuery{Should: []Clause{
			RangeClause{Field: "createdOn", Lte: tr.EndMs},
			bothTimestampsAbsentClause(),
			TermsClause{Field: "properties.source", Values: []string{manualSentinel}},
		}})
	}
	return clauses
}

// bothTimestampsAbsentClause matches an edge only when neither
// createdOn nor updatedOn is present, mirroring a combined existence
// filter rather than a single-field null check.
func bothTimestampsAbsentClause() Clause {
	return BoolQuery{Must: []Clause{
		RangeClause{Field: "createdOn", OrAbsent: true},
		RangeClause{Field: "updatedOn", OrAbsent: true},
	}}
}

// BuildStaticEdgeQuery composes a structured, non-lineage edge search:
// source/destination type terms plus EQUAL-only filter conjunctions,
// and a relationship-type disjunction. Any non-EQUAL criterion fails.
func (b *QueryBuilder) BuildStaticEdgeQuery(sourceType string, sourceFilter Filter, destType string, destFilter Filter, relationshipTypes []string) (BoolQuery, error) {
	must := []Clause{
		TermsClause{Field: "source.entityType", Values: []string{sourceType}},
		TermsClause{Field: "destination.entityType", Values: []string{destType}},
	}

	sourceClause, err := b.buildFilterClause("source.", sourceFilter)
	if err != nil {
		return BoolQuery{}, err
	}
	if sourceClause != nil {
		must = append(must, sourceClause)
	}

	destClause, err := b.buildFilterClause("destination.", destFilter)
	if err != nil {
		return BoolQuery{}, err
	}
	if destClause != nil {
		must = append(must, destClause)
	}

	if len(relationshipTypes) > 0 {
		must = append(must, TermsClause{Field: "relationshipType", Values: relationshipTypes})
	}

	return BoolQuery{Must: must}, nil
}

func (b *QueryBuilder) buildFilterClause(prefix string, filter Filter) (Clause, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	var should []Clause
	for _, conj := range filter {
		var must []Clause
		for _, c := range conj {
			if c.Condition != ConditionEqual {
				return nil, ErrInvalidFilterCondition(c.Field)
			}
			field := c.Field
			if !strings.HasPrefix(field, prefix) {
				field = prefix + field
			}
			must = append(must, TermsClause{Field: field, Values: []string{c.Value}})
		}
		should = append(should, BoolQuery{Must: must})
	}
	return BoolQuery{Should: should}, nil
}
