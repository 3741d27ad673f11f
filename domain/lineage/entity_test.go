package lineage

import "testing"

func TestGraphFilters_Allows(t *testing.T) {
	tests := []struct {
		name    string
		filters GraphFilters
		typ     string
		want    bool
	}{
		{"empty filter allows everything", GraphFilters{}, "Dataset", true},
		{"exact match", GraphFilters{AllowedEntityTypes: []string{"Dataset", "DataJob"}}, "Dataset", true},
		{"case insensitive match", GraphFilters{AllowedEntityTypes: []string{"dataset"}}, "Dataset", true},
		{"no match", GraphFilters{AllowedEntityTypes: []string{"DataJob"}}, "Dataset", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.allows(tt.typ); got != tt.want {
				t.Errorf("allows(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestEdgeDocument_IsManual(t *testing.T) {
	manual := EdgeDocument{Properties: map[string]string{"source": "UI"}}
	if !manual.IsManual("UI") {
		t.Error("expected manual edge to be detected")
	}

	discovered := EdgeDocument{Properties: map[string]string{"source": "scanner"}}
	if discovered.IsManual("UI") {
		t.Error("expected non-manual edge not to be detected as manual")
	}

	absent := EdgeDocument{}
	if absent.IsManual("UI") {
		t.Error("expected edge with no properties not to be manual")
	}
}

func TestPath_Clone(t *testing.T) {
	p := Path{{Value: "a"}, {Value: "b"}}
	clone := p.Clone()

	clone[0].Value = "mutated"
	if p[0].Value != "a" {
		t.Error("Clone should not alias the original path's backing array")
	}
}

func TestTimeRange_Empty(t *testing.T) {
	if !(TimeRange{}).empty() {
		t.Error("zero-value TimeRange should be empty")
	}
	start := int64(100)
	if (TimeRange{StartMs: &start}).empty() {
		t.Error("TimeRange with StartMs set should not be empty")
	}
}
