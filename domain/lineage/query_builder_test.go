package lineage

import "testing"

func TestQueryBuilder_BuildFrontierQuery_EmptyEdgeSet(t *testing.T) {
	b := NewQueryBuilder("UI")
	q := b.BuildFrontierQuery([]string{"urn:a"}, edgeSet{}, GraphFilters{}, TimeRange{})
	if len(q.Should) != 0 {
		t.Errorf("expected no Should branches when no edges are registered, got %d", len(q.Should))
	}
}

func TestQueryBuilder_BuildFrontierQuery_OutgoingAndIncoming(t *testing.T) {
	b := NewQueryBuilder("UI")
	es := edgeSet{outgoingTypes: []string{"DownstreamOf"}, incomingTypes: []string{"Produces"}}
	q := b.BuildFrontierQuery([]string{"urn:a"}, es, GraphFilters{}, TimeRange{})

	if len(q.Should) != 2 {
		t.Fatalf("expected 2 Should branches (outgoing + incoming), got %d", len(q.Should))
	}
}

func TestQueryBuilder_BuildStaticEdgeQuery_RejectsNonEqual(t *testing.T) {
	b := NewQueryBuilder("UI")
	filter := Filter{{{Field: "name", Condition: "CONTAINS", Value: "x"}}}

	_, err := b.BuildStaticEdgeQuery("Dataset", filter, "DataJob", nil, nil)
	if err == nil {
		t.Fatal("expected an error for a non-EQUAL condition")
	}
}

func TestQueryBuilder_BuildStaticEdgeQuery_Valid(t *testing.T) {
	b := NewQueryBuilder("UI")
	filter := Filter{{{Field: "name", Condition: ConditionEqual, Value: "x"}}}

	q, err := b.BuildStaticEdgeQuery("Dataset", filter, "DataJob", nil, []string{"Produces"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Must) == 0 {
		t.Error("expected Must clauses for source/destination entity types")
	}
}

func TestTimeRangeClauses_ManualExemptionPresent(t *testing.T) {
	start := int64(1000)
	clauses := timeRangeClauses(TimeRange{StartMs: &start}, "UI")
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause for a start-only range, got %d", len(clauses))
	}

	bq, ok := clauses[0].(BoolQuery)
	if !ok {
		t.Fatalf("expected a BoolQuery wrapping the exemptions, got %T", clauses[0])
	}

	foundManual := false
	for _, c := range bq.Should {
		if tc, ok := c.(TermsClause); ok && tc.Field == "properties.source" {
			foundManual = true
		}
	}
	if !foundManual {
		t.Error("expected a manual-source exemption branch in the time range clause")
	}
}

func TestTimeRangeClauses_AbsentExemptionRequiresBothTimestampsMissing(t *testing.T) {
	start := int64(1000)
	clauses := timeRangeClauses(TimeRange{StartMs: &start}, "UI")
	bq := clauses[0].(BoolQuery)

	var absent BoolQuery
	found := false
	for _, c := range bq.Should {
		if inner, ok := c.(BoolQuery); ok {
			absent = inner
			found = true
		}
	}
	if !found {
		t.Fatal("expected a nested BoolQuery exemption branch for absent timestamps")
	}
	if len(absent.Must) != 2 {
		t.Fatalf("expected the absent-timestamp exemption to AND both fields, got %d Must clauses", len(absent.Must))
	}
	fields := map[string]bool{}
	for _, c := range absent.Must {
		rc, ok := c.(RangeClause)
		if !ok || !rc.OrAbsent {
			t.Fatalf("expected an OrAbsent RangeClause, got %+v", c)
		}
		fields[rc.Field] = true
	}
	if !fields["createdOn"] || !fields["updatedOn"] {
		t.Errorf("expected the exemption to require both createdOn and updatedOn absent, got %+v", fields)
	}
}
