// README: Recommendation handlers (search page + on-demand AI summary).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Loganocm/Parlor/internal/types"
)

// requestTimeout bounds each inbound request's provider round-trips.
const requestTimeout = 10 * time.Second

// RecommendService is implemented by recommend.Service.
type RecommendService interface {
	Recommend(ctx context.Context, req types.SearchRequest) ([]types.Restaurant, string, error)
	SummaryForPlace(ctx context.Context, placeID string) (types.AIGeneratedSummary, error)
}

type RecommendationHandler struct {
	recommend RecommendService
}

func NewRecommendationHandler(svc RecommendService) *RecommendationHandler {
	return &RecommendationHandler{recommend: svc}
}

// Recommendations handles POST /api/pizza-recommendations.
func (h *RecommendationHandler) Recommendations(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, _, err := h.recommend.Recommend(ctx, req)
	if err != nil {
		writeRecommendError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, page)
}

// Summary handles GET /api/restaurants/:id/summary.
func (h *RecommendationHandler) Summary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing restaurant id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.recommend.SummaryForPlace(ctx, id)
	if err != nil {
		writeRecommendError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, summary)
}
