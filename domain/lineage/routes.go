package lineage

import "github.com/labstack/echo/v4"

// RegisterRoutes registers the lineage HTTP surface.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/lineage/query", h.Query)
	e.POST("/api/lineage/edges/search", h.SearchEdges)
}
