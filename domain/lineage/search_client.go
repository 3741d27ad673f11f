package lineage

import "context"

// Condition is a comparison operator usable in a Criterion. The engine
// currently accepts only EQUAL; anything else fails Query Builder
// validation with ErrInvalidFilterCondition.
type Condition string

const ConditionEqual Condition = "EQUAL"

// Criterion is a single field comparison.
type Criterion struct {
	Field     string
	Condition Condition
	Value     string
}

// ConjunctiveCriterion is a conjunction (AND) of Criteria.
type ConjunctiveCriterion []Criterion

// Filter is a disjunction (OR) of ConjunctiveCriterions.
type Filter []ConjunctiveCriterion

// TermsClause matches a field against a set of allowed values.
type TermsClause struct {
	Field  string
	Values []string
}

// RangeClause bounds a numeric field. OrAbsent also matches documents
// where the field is null, and OrManual also matches edges carrying the
// manual-source sentinel. The query builder expresses its time-range
// exemptions as separate Should branches instead: it sets OrAbsent only
// on a clause without bounds (a plain "field is null" test) and never
// sets OrManual.
type RangeClause struct {
	Field    string
	Gte      *int64
	Lte      *int64
	OrAbsent bool
	OrManual bool
}

// BoolQuery is a minimal boolean query model: documents must satisfy
// every Must clause and at least one Should clause (when any are
// present), mirroring the should/must shape of a search-engine bool
// query without depending on any particular client library's types.
type BoolQuery struct {
	Must   []Clause
	Should []Clause
}

// Clause is implemented by TermsClause, RangeClause, and nested
// BoolQuery (for OR-of-AND composition).
type Clause interface{ isClause() }

func (TermsClause) isClause() {}
func (RangeClause) isClause() {}
func (BoolQuery) isClause()   {}

// SortKey orders search-after pagination.
type SortKey struct {
	Field     string
	Ascending bool
}

// Hit is one matched document plus its sort values, for search-after
// continuation.
type Hit struct {
	Document   EdgeDocument
	SortValues []any
}

// SearchHits is one page of search results.
type SearchHits struct {
	Total int
	Hits  []Hit
}

// SearchClient is the consumed search backend abstraction. The
// traversal core only ever calls Search; SearchAfter exists for
// out-of-band scan/export tooling (see Service.ScanEdges).
type SearchClient interface {
	Search(ctx context.Context, query BoolQuery, from, size int) (SearchHits, error)
	SearchAfter(ctx context.Context, query BoolQuery, sort SortKey, pointInTimeID string, keepAlive string, size int) (SearchHits, error)
}
