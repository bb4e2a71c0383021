// README: Handler tests for the places proxy endpoints.
package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loganocm/Parlor/internal/http/handlers"
	"github.com/Loganocm/Parlor/internal/maps"
)

// stubPlacesGateway is a test double for handlers.PlacesGateway.
type stubPlacesGateway struct {
	lat, lng    float64
	geocodeErr  error
	predictions []maps.Prediction
	details     *maps.PlaceDetails
	detailsErr  error
	photoBody   string
	photoType   string
	photoErr    error

	lastInput    string
	lastToken    string
	lastPlaceID  string
	lastResource string
}

func (s *stubPlacesGateway) GeocodeAddress(_ context.Context, _ string) (float64, float64, error) {
	return s.lat, s.lng, s.geocodeErr
}

func (s *stubPlacesGateway) GetAutocompletePredictions(_ context.Context, input, sessionToken string) []maps.Prediction {
	s.lastInput = input
	s.lastToken = sessionToken
	return s.predictions
}

func (s *stubPlacesGateway) GetPlaceDetails(_ context.Context, placeID string) (*maps.PlaceDetails, error) {
	s.lastPlaceID = placeID
	return s.details, s.detailsErr
}

func (s *stubPlacesGateway) FetchPhoto(_ context.Context, resourceName string) (io.ReadCloser, string, error) {
	s.lastResource = resourceName
	if s.photoErr != nil {
		return nil, "", s.photoErr
	}
	return io.NopCloser(strings.NewReader(s.photoBody)), s.photoType, nil
}

func buildPlacesRouter(gw handlers.PlacesGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewPlacesHandler(gw)
	r.GET("/api/media/*resourceName", h.Media)
	r.GET("/api/places/autocomplete", h.Autocomplete)
	r.GET("/api/places/details/:placeId", h.Details)
	r.POST("/api/geocode", h.Geocode)
	return r
}

func TestAutocomplete_ReturnsPredictions(t *testing.T) {
	gw := &stubPlacesGateway{predictions: []maps.Prediction{
		{PlaceID: "p1", Description: "Boston, MA, USA"},
	}}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodGet, "/api/places/autocomplete?input=bos&session_token=tok-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bos", gw.lastInput)
	assert.Equal(t, "tok-1", gw.lastToken)
	assert.Contains(t, w.Body.String(), "Boston, MA, USA")
}

func TestAutocomplete_MissingInput(t *testing.T) {
	r := buildPlacesRouter(&stubPlacesGateway{})

	w := doRequest(r, http.MethodGet, "/api/places/autocomplete", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "input parameter is required")
}

func TestAutocomplete_EmptyListOnProviderFailure(t *testing.T) {
	// The gateway absorbs provider failures, so the handler only ever sees a
	// list; an empty one must still be a 200 with [].
	r := buildPlacesRouter(&stubPlacesGateway{predictions: []maps.Prediction{}})

	w := doRequest(r, http.MethodGet, "/api/places/autocomplete?input=zzz", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestDetails_ReturnsDetails(t *testing.T) {
	gw := &stubPlacesGateway{details: &maps.PlaceDetails{
		Place: maps.Place{ID: "places/p1", DisplayName: maps.LocalizedText{Text: "Slice House"}},
	}}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodGet, "/api/places/details/p1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", gw.lastPlaceID)
	assert.Contains(t, w.Body.String(), "Slice House")
}

func TestDetails_UpstreamErrorIs500(t *testing.T) {
	gw := &stubPlacesGateway{detailsErr: errors.New("places: status 500")}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodGet, "/api/places/details/p1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMedia_StreamsPhoto(t *testing.T) {
	gw := &stubPlacesGateway{photoBody: "jpegbytes", photoType: "image/jpeg"}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodGet, "/api/media/places/p1/photos/ph1/media", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "places/p1/photos/ph1/media", gw.lastResource)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpegbytes", w.Body.String())
}

func TestMedia_FetchFailureIs404(t *testing.T) {
	gw := &stubPlacesGateway{photoErr: errors.New("places: status 403")}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodGet, "/api/media/places/p1/photos/ph1/media", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeocode_ReturnsCoordinates(t *testing.T) {
	gw := &stubPlacesGateway{lat: 42.3601, lng: -71.0589}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodPost, "/api/geocode", map[string]any{"address": "Boston, MA"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42.3601")
	assert.Contains(t, w.Body.String(), "-71.0589")
}

func TestGeocode_MissingAddress(t *testing.T) {
	r := buildPlacesRouter(&stubPlacesGateway{})

	w := doRequest(r, http.MethodPost, "/api/geocode", map[string]any{"address": "  "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeocode_FailureIs400(t *testing.T) {
	gw := &stubPlacesGateway{geocodeErr: errors.New("geocoding failed: no results")}
	r := buildPlacesRouter(gw)

	w := doRequest(r, http.MethodPost, "/api/geocode", map[string]any{"address": "nowhere"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
