package payments

import (
	"errors"
	"net/http"

	"github.com/propnest/backend/pkg/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrPoolConflict) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}
