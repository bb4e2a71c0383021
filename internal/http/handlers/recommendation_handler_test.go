// README: Handler tests for the recommendation endpoints.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loganocm/Parlor/internal/http/handlers"
	"github.com/Loganocm/Parlor/internal/maps"
	"github.com/Loganocm/Parlor/internal/modules/recommend"
	"github.com/Loganocm/Parlor/internal/types"
)

// stubRecommender is a test double for handlers.RecommendService.
type stubRecommender struct {
	page      []types.Restaurant
	sessionID string
	summary   types.AIGeneratedSummary
	err       error

	lastReq types.SearchRequest
	lastID  string
}

func (s *stubRecommender) Recommend(_ context.Context, req types.SearchRequest) ([]types.Restaurant, string, error) {
	s.lastReq = req
	return s.page, s.sessionID, s.err
}

func (s *stubRecommender) SummaryForPlace(_ context.Context, placeID string) (types.AIGeneratedSummary, error) {
	s.lastID = placeID
	return s.summary, s.err
}

func buildRecommendRouter(svc handlers.RecommendService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewRecommendationHandler(svc)
	r.POST("/api/pizza-recommendations", h.Recommendations)
	r.GET("/api/restaurants/:id/summary", h.Summary)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecommendations_ReturnsPage(t *testing.T) {
	svc := &stubRecommender{
		page: []types.Restaurant{
			{ID: "a", Name: "Slice House", Rating: 4.8},
			{ID: "b", Name: "Doughmain", Rating: 4.5},
		},
		sessionID: "sess-1",
	}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pizza-recommendations", map[string]any{
		"address": "Boston, MA",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var got []types.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Slice House", got[0].Name)
	assert.Equal(t, "Boston, MA", svc.lastReq.Address)
}

func TestRecommendations_InvalidJSON(t *testing.T) {
	r := buildRecommendRouter(&stubRecommender{})

	req := httptest.NewRequest(http.MethodPost, "/api/pizza-recommendations", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations_ValidationErrorIs400(t *testing.T) {
	svc := &stubRecommender{err: fmt.Errorf("%w: either address or coordinates are required", recommend.ErrValidation)}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pizza-recommendations", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations_GeocodeErrorIs400(t *testing.T) {
	svc := &stubRecommender{err: fmt.Errorf("%w: no results", maps.ErrGeocode)}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pizza-recommendations", map[string]any{
		"address": "nowhere at all",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations_UpstreamErrorIs500(t *testing.T) {
	svc := &stubRecommender{err: errors.New("places: status 503")}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pizza-recommendations", map[string]any{
		"address": "Boston, MA",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSummary_ReturnsSummary(t *testing.T) {
	svc := &stubRecommender{
		summary: types.AIGeneratedSummary{
			Summary:         "A neighborhood favorite.",
			Highlights:      []string{"Great pizza", "Good service"},
			Recommendations: []string{"Try the margherita"},
		},
	}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/restaurants/place-123/summary", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "place-123", svc.lastID)

	var got types.AIGeneratedSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "A neighborhood favorite.", got.Summary)
}

func TestSummary_UnknownPlaceIs404(t *testing.T) {
	svc := &stubRecommender{err: fmt.Errorf("%w: place-404", recommend.ErrNotFound)}
	r := buildRecommendRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/restaurants/place-404/summary", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
