package searchindex

import (
	"strings"

	"github.com/uptrace/bun"

	"github.com/emergent-company/lineage-engine/domain/lineage"
)

// fieldColumn translates the logical document field names the query
// builder emits into lineage_edges column expressions.
func fieldColumn(field string) string {
	switch field {
	case "source.urn":
		return "source_urn"
	case "source.entityType":
		return "source_entity_type"
	case "destination.urn":
		return "destination_urn"
	case "destination.entityType":
		return "destination_entity_type"
	case "relationshipType":
		return "relationship_type"
	case "createdOn":
		return "created_on"
	case "updatedOn":
		return "updated_on"
	}
	if rest, ok := strings.CutPrefix(field, "properties."); ok {
		return "properties->>'" + rest + "'"
	}
	return field
}

// renderBoolQuery compiles a lineage.BoolQuery into a SQL predicate and
// its positional arguments. An empty result means "no restriction".
func renderBoolQuery(bq lineage.BoolQuery, manualSentinel string) (string, []any) {
	var parts []string
	var args []any

	for _, c := range bq.Must {
		s, a := renderClause(c, manualSentinel)
		if s == "" {
			continue
		}
		parts = append(parts, s)
		args = append(args, a...)
	}

	if len(bq.Should) > 0 {
		var orParts []string
		for _, c := range bq.Should {
			s, a := renderClause(c, manualSentinel)
			if s == "" {
				continue
			}
			orParts = append(orParts, s)
			args = append(args, a...)
		}
		if len(orParts) > 0 {
			parts = append(parts, "("+strings.Join(orParts, " OR ")+")")
		}
	}

	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, " AND "), args
}

func renderClause(clause lineage.Clause, manualSentinel string) (string, []any) {
	switch c := clause.(type) {
	case lineage.TermsClause:
		if len(c.Values) == 0 {
			return "", nil
		}
		return fieldColumn(c.Field) + " IN (?)", []any{bun.In(c.Values)}
	case lineage.RangeClause:
		return renderRange(c, manualSentinel)
	case lineage.BoolQuery:
		s, a := renderBoolQuery(c, manualSentinel)
		if s == "" {
			return "", nil
		}
		return "(" + s + ")", a
	default:
		return "", nil
	}
}

func renderRange(c lineage.RangeClause, manualSentinel string) (string, []any) {
	col := fieldColumn(c.Field)
	var parts []string
	var args []any

	if c.Gte != nil {
		parts = append(parts, col+" >= ?")
		args = append(args, *c.Gte)
	}
	if c.Lte != nil {
		parts = append(parts, col+" <= ?")
		args = append(args, *c.Lte)
	}
	if c.OrAbsent {
		parts = append(parts, col+" IS NULL")
	}
	if c.OrManual {
		parts = append(parts, "properties->>'source' = ?")
		args = append(args, manualSentinel)
	}

	if len(parts) == 0 {
		return "", nil
	}
	if len(parts) == 1 {
		return parts[0], args
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func toDocument(row EdgeRow) lineage.EdgeDocument {
	return lineage.EdgeDocument{
		SourceURN:             row.SourceURN,
		SourceEntityType:      row.SourceEntityType,
		DestinationURN:        row.DestinationURN,
		DestinationEntityType: row.DestinationEntityType,
		RelationshipType:      row.RelationshipType,
		CreatedOn:             row.CreatedOn,
		CreatedActor:          row.CreatedActor,
		UpdatedOn:             row.UpdatedOn,
		UpdatedActor:          row.UpdatedActor,
		Properties:            row.Properties,
	}
}
