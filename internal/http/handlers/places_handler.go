// README: Places proxy handlers (autocomplete, details, photo media, geocode).
package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Loganocm/Parlor/internal/maps"
)

// PlacesGateway is implemented by maps.PlacesService.
type PlacesGateway interface {
	GeocodeAddress(ctx context.Context, address string) (float64, float64, error)
	GetAutocompletePredictions(ctx context.Context, input, sessionToken string) []maps.Prediction
	GetPlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
	FetchPhoto(ctx context.Context, resourceName string) (io.ReadCloser, string, error)
}

type PlacesHandler struct {
	places PlacesGateway
}

func NewPlacesHandler(svc PlacesGateway) *PlacesHandler {
	return &PlacesHandler{places: svc}
}

// Autocomplete handles GET /api/places/autocomplete. Provider failures are
// absorbed into an empty list; only a malformed request errors.
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		writeError(c, http.StatusInternalServerError, "input parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	predictions := h.places.GetAutocompletePredictions(ctx, input, c.Query("session_token"))
	writeJSON(c, http.StatusOK, predictions)
}

// Details handles GET /api/places/details/:placeId.
func (h *PlacesHandler) Details(c *gin.Context) {
	placeID := c.Param("placeId")
	if placeID == "" {
		writeError(c, http.StatusBadRequest, "missing place id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	details, err := h.places.GetPlaceDetails(ctx, placeID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, details)
}

// Media handles GET /api/media/*resourceName, streaming the photo through
// this service so the provider key stays server-side.
func (h *PlacesHandler) Media(c *gin.Context) {
	resourceName := strings.TrimPrefix(c.Param("resourceName"), "/")
	if resourceName == "" {
		writeError(c, http.StatusNotFound, "resource name required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	body, contentType, err := h.places.FetchPhoto(ctx, resourceName)
	if err != nil {
		writeError(c, http.StatusNotFound, "photo not found")
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}

type geocodeReq struct {
	Address string `json:"address"`
}

type geocodeResp struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocode handles POST /api/geocode.
func (h *PlacesHandler) Geocode(c *gin.Context) {
	var req geocodeReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		writeError(c, http.StatusBadRequest, "address is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	lat, lng, err := h.places.GeocodeAddress(ctx, req.Address)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, geocodeResp{Latitude: lat, Longitude: lng})
}
