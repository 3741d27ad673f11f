package lineage

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/lineage-engine/pkg/apperror"
)

// Handler exposes the lineage engine over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Query handles POST /api/lineage/query.
func (h *Handler) Query(c echo.Context) error {
	var req LineageQueryRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if req.URN == "" {
		return apperror.NewBadRequest("urn is required")
	}

	dir := Outgoing
	if req.Direction == string(Incoming) {
		dir = Incoming
	}

	q := Query{
		Root:    Urn{Value: req.URN, Type: req.EntityType},
		Direction: dir,
		Filters: GraphFilters{AllowedEntityTypes: req.AllowedEntityTypes},
		Offset:  req.Offset,
		Count:   req.Count,
		MaxHops: req.MaxHops,
		TimeRange: TimeRange{StartMs: req.StartMs, EndMs: req.EndMs},
	}

	result, err := h.svc.GetLineage(c.Request().Context(), q)
	if err != nil {
		return err
	}

	dtos := make([]LineageRelationshipDTO, len(result.Relationships))
	for i, r := range result.Relationships {
		dtos[i] = toDTO(r)
	}

	return c.JSON(http.StatusOK, LineageQueryResponse{
		Total:         result.Total,
		Relationships: dtos,
		Truncated:     result.Truncated,
	})
}

// SearchEdges handles POST /api/lineage/edges/search.
func (h *Handler) SearchEdges(c echo.Context) error {
	var req EdgeSearchRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	hits, err := h.svc.SearchEdges(c.Request().Context(), req.SourceEntityType, toFilter(req.SourceFilter), req.DestinationEntityType, toFilter(req.DestinationFilter), req.RelationshipTypes, req.From, req.Size)
	if err != nil {
		return err
	}

	docs := make([]EdgeDocument, len(hits.Hits))
	for i, hit := range hits.Hits {
		docs[i] = hit.Document
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total": hits.Total,
		"edges": docs,
	})
}
