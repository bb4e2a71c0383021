// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Loganocm/Parlor/internal/maps"
	"github.com/Loganocm/Parlor/internal/modules/recommend"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeRecommendError maps module errors onto the HTTP taxonomy: validation
// and geocoding failures are the client's fault, unknown places are 404, and
// everything else is an upstream/unexpected 500.
func writeRecommendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrValidation), errors.Is(err, maps.ErrGeocode):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, recommend.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}
