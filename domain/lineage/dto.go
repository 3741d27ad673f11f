package lineage

// LineageQueryRequest is the JSON body of POST /api/lineage/query.
type LineageQueryRequest struct {
	URN                string   `json:"urn"`
	EntityType         string   `json:"entityType"`
	Direction          string   `json:"direction"`
	AllowedEntityTypes []string `json:"allowedEntityTypes,omitempty"`
	Offset             int      `json:"offset"`
	Count              int      `json:"count"`
	MaxHops            int      `json:"maxHops"`
	StartMs            *int64   `json:"startMs,omitempty"`
	EndMs              *int64   `json:"endMs,omitempty"`
}

// LineageRelationshipDTO is the JSON representation of a Relationship.
type LineageRelationshipDTO struct {
	Type         string     `json:"type"`
	Entity       string     `json:"entity"`
	EntityType   string     `json:"entityType"`
	Degree       int        `json:"degree"`
	Paths        [][]string `json:"paths"`
	CreatedOn    *int64     `json:"createdOn,omitempty"`
	CreatedActor string     `json:"createdActor,omitempty"`
	UpdatedOn    *int64     `json:"updatedOn,omitempty"`
	UpdatedActor string     `json:"updatedActor,omitempty"`
	IsManual     bool       `json:"isManual"`
}

// LineageQueryResponse is the JSON body returned by POST /api/lineage/query.
type LineageQueryResponse struct {
	Total         int                      `json:"total"`
	Relationships []LineageRelationshipDTO `json:"relationships"`
	Truncated     bool                     `json:"truncated"`
}

func toDTO(r Relationship) LineageRelationshipDTO {
	paths := make([][]string, len(r.Paths))
	for i, p := range r.Paths {
		urns := make([]string, len(p))
		for j, u := range p {
			urns[j] = u.Value
		}
		paths[i] = urns
	}
	return LineageRelationshipDTO{
		Type:         r.Type,
		Entity:       r.Entity.Value,
		EntityType:   r.Entity.Type,
		Degree:       r.Degree,
		Paths:        paths,
		CreatedOn:    r.CreatedOn,
		CreatedActor: r.CreatedActor,
		UpdatedOn:    r.UpdatedOn,
		UpdatedActor: r.UpdatedActor,
		IsManual:     r.IsManual,
	}
}

// EdgeSearchRequest is the JSON body of POST /api/lineage/edges/search.
type EdgeSearchRequest struct {
	SourceEntityType      string          `json:"sourceEntityType"`
	SourceFilter          [][]CriterionDTO `json:"sourceFilter,omitempty"`
	DestinationEntityType string          `json:"destinationEntityType"`
	DestinationFilter     [][]CriterionDTO `json:"destinationFilter,omitempty"`
	RelationshipTypes     []string        `json:"relationshipTypes,omitempty"`
	From                  int             `json:"from"`
	Size                  int             `json:"size"`
}

// CriterionDTO is the JSON representation of a Criterion.
type CriterionDTO struct {
	Field     string `json:"field"`
	Condition string `json:"condition"`
	Value     string `json:"value"`
}

func toFilter(dto [][]CriterionDTO) Filter {
	filter := make(Filter, len(dto))
	for i, conj := range dto {
		cc := make(ConjunctiveCriterion, len(conj))
		for j, c := range conj {
			cc[j] = Criterion{Field: c.Field, Condition: Condition(c.Condition), Value: c.Value}
		}
		filter[i] = cc
	}
	return filter
}
