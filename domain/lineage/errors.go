package lineage

import (
	"net/http"

	"github.com/emergent-company/lineage-engine/pkg/apperror"
)

// ErrInvalidFilterCondition is raised when a Criterion uses a condition
// other than EQUAL.
func ErrInvalidFilterCondition(field string) *apperror.Error {
	return apperror.New(http.StatusBadRequest, "invalid_filter_condition",
		"only EQUAL conditions are supported for field "+field)
}

// ErrSearchBackend wraps a failure from the search backend RPC.
func ErrSearchBackend(cause error) *apperror.Error {
	return apperror.New(http.StatusBadGateway, "search_backend_error",
		"search backend request failed").WithInternal(cause)
}

// ErrPathClone wraps a failure while cloning a path during extension.
func ErrPathClone(cause error) *apperror.Error {
	return apperror.New(http.StatusInternalServerError, "path_clone_failure",
		"failed to clone traversal path").WithInternal(cause)
}
